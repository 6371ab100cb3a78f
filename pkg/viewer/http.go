package viewer

import (
	"html/template"
	"log"
	"net/http"

	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/network/httpx"
)

func NewHTTPServer(conf config.ViewerConfig, log *logger.Logger, fnMux func(mux *http.ServeMux)) (*httpx.Server, error) {
	return httpx.NewServer(
		conf.Viewer.GetAddr(),
		func(*httpx.Server) http.Handler {
			h := http.NewServeMux()
			h.Handle("/", index(conf))
			h.Handle("/static/", static("./web"))
			fnMux(h)
			return h
		},
		httpx.WithServerConfig(conf.Viewer.Server),
		httpx.WithLogger(log),
	)
}

func index(conf config.ViewerConfig) http.Handler {
	tpl, err := template.ParseFiles("./web/index.html")
	if err != nil {
		log.Fatal(err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// return 404 on unknown
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		// render index page with some tpl values
		if err = tpl.Execute(w, conf.Viewer.Render); err != nil {
			log.Fatal(err)
		}
	})
}

func static(dir string) http.Handler {
	return http.StripPrefix("/static/", httpx.FileServer(dir))
}
