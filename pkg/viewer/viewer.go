package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/downloader"
	"github.com/glcage/glcage/pkg/library"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/monitoring"
	"github.com/glcage/glcage/pkg/os"
	"github.com/glcage/glcage/pkg/screenshot"
	"github.com/glcage/glcage/pkg/service"
	"github.com/glcage/glcage/pkg/storage"
	"github.com/gofrs/uuid"
)

// Viewer is the shader preview service: a render loop with an HTTP
// API around it and an event stream for the connected pages.
type Viewer struct {
	conf     config.ViewerConfig
	log      *logger.Logger
	lib      library.ShaderLibrary
	renderer *Renderer
	hub      *Hub
	saver    *screenshot.Saver
	store    storage.Storage
	services service.Group
}

func New(conf config.ViewerConfig, log *logger.Logger) *Viewer {
	if err := CheckLibrary(conf, log); err != nil {
		log.Warn().Err(err).Msgf("a shader pack sync fail")
	}
	lib := library.NewLib(conf.Library, log)
	lib.Scan()

	v := &Viewer{
		conf:  conf,
		log:   log,
		lib:   lib,
		hub:   NewHub(log),
		store: storage.New(conf.Storage, log),
	}

	saver, err := screenshot.NewSaver(screenshot.Options{
		Folder:  conf.Viewer.Screenshot.Folder,
		Label:   conf.Viewer.Screenshot.Label,
		MaxSize: conf.Viewer.Screenshot.MaxSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("screenshot folder fail")
		saver, _ = screenshot.NewSaver(screenshot.Options{
			Label:   conf.Viewer.Screenshot.Label,
			MaxSize: conf.Viewer.Screenshot.MaxSize,
		})
	}
	v.saver = saver

	v.renderer = NewRenderer(conf, lib, log)
	v.renderer.OnBuild(func(info BuildInfo) {
		ev := Event{T: EventBuild, Name: displayName(info.Name)}
		if info.Err != nil {
			ev.Err = info.Err.Error()
		}
		v.hub.Broadcast(ev)
	})
	lib.OnChange(func() {
		v.hub.Broadcast(Event{T: EventLibrary})
		v.renderer.Reload()
	})

	httpSrv, err := NewHTTPServer(conf, log, func(h *http.ServeMux) {
		h.HandleFunc("/events", v.hub.Handle)
		h.HandleFunc("/frame.png", v.handleFrame)
		h.HandleFunc("/shaders", v.handleShaders)
		h.HandleFunc("/use", v.handleUse)
		h.HandleFunc("/screenshot", v.handleScreenshot)
	})
	if err != nil {
		panic("http failed: " + err.Error())
	}
	v.services.Add(httpSrv)
	v.services.AddIf(conf.Viewer.Monitoring.IsEnabled(), monitoring.New(conf.Viewer.Monitoring, "view", log))

	return v
}

// Start spins the render loop with the web services and fails when
// the GL surface or the initial shader can't be brought up.
func (v *Viewer) Start() error {
	if err := v.renderer.Start(); err != nil {
		return err
	}
	v.services.Start()
	return nil
}

func (v *Viewer) Shutdown(ctx context.Context) error {
	v.renderer.Stop()
	v.hub.Close()
	return v.services.Shutdown(ctx)
}

func (v *Viewer) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame := v.renderer.Frame()
	data, err := v.saver.Encode(screenshot.FromRGBA(frame.W, frame.H, frame.Pix))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (v *Viewer) handleShaders(w http.ResponseWriter, r *http.Request) {
	type shader struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Vertex bool   `json:"vertex,omitempty"`
	}
	list := struct {
		Current string   `json:"current"`
		Shaders []shader `json:"shaders"`
	}{Current: v.renderer.Current(), Shaders: []shader{}}
	for _, s := range v.lib.GetAll() {
		list.Shaders = append(list.Shaders, shader{Name: s.Name, Type: s.Type, Vertex: s.HasVertex()})
	}
	writeJSON(w, list)
}

func (v *Viewer) handleUse(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name != "" && !v.lib.FindShaderByName(name).Found() {
		http.NotFound(w, r)
		return
	}
	v.renderer.Use(name)
	writeJSON(w, struct {
		Name string `json:"name"`
	}{Name: displayName(name)})
}

func (v *Viewer) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	frame := v.renderer.Frame()
	current := v.renderer.Current()
	base := current
	if base == "" {
		base = "shader"
	}
	uid := uuid.Must(uuid.NewV4()).String()
	name := fmt.Sprintf("%s-%s-%s.png", time.Now().Format("20060102"), base, uid[:8])

	path, err := v.saver.Save(name, screenshot.FromRGBA(frame.W, frame.H, frame.Pix), displayName(current))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := struct {
		File      string `json:"file"`
		Published bool   `json:"published,omitempty"`
	}{File: path}
	if !v.store.IsNoop() {
		if err := v.store.Save(name, path); err != nil {
			v.log.Error().Err(err).Msg("cloud publish fail")
		} else {
			out.Published = true
		}
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// CheckLibrary populates an empty shader library directory from the
// configured starter pack URL.
func CheckLibrary(conf config.ViewerConfig, log *logger.Logger) error {
	if conf.Download.URL == "" {
		return nil
	}
	dir, err := filepath.Abs(conf.Library.BasePath)
	if err != nil {
		return err
	}
	if err := os.CheckCreateDir(dir); err != nil {
		return err
	}

	// used for synchronization of multiple processes
	flock, err := os.NewFileLock(conf.Download.ExtLock)
	if err != nil {
		log.Error().Err(err).Msgf("couldn't make file lock")
		return err
	}
	// IPC lock if multiple viewer processes on the same machine
	if err := flock.Lock(); err != nil {
		log.Error().Err(err).Msg("file lock fail")
	}
	defer func() {
		if err := flock.Unlock(); err != nil {
			log.Error().Err(err).Msg("file unlock fail")
		}
	}()

	if hasShaders(dir, conf.Library.GetSupportedExtensions()) {
		return nil
	}
	log.Info().Msg("Starting shader pack download...")
	client := downloader.NewDefaultDownloader(log)
	if _, fails := client.Download(dir, downloader.Download{Key: "pack", Address: conf.Download.URL}); len(fails) > 0 {
		return fmt.Errorf("couldn't fetch the shader pack: %v", fails)
	}
	return nil
}

// hasShaders reports whether the directory root already contains
// at least one supported shader file.
func hasShaders(dir string, exts []string) bool {
	for _, e := range exts {
		if m, _ := filepath.Glob(filepath.Join(dir, "*."+e)); len(m) > 0 {
			return true
		}
	}
	return false
}
