package viewer

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glcage/glcage/pkg/compression/zip"
	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/library"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/screenshot"
	"github.com/glcage/glcage/pkg/storage"
)

func testViewer(t *testing.T) *Viewer {
	t.Helper()
	l := logger.Default()
	conf := config.ViewerConfig{
		Gfx: config.Gfx{Width: 16, Height: 12},
		Library: config.Library{
			BasePath:  "../../assets/shaders",
			Supported: []string{"frag", "glsl"},
			Ignored:   []string{"neon"},
		},
	}
	lib := library.NewLib(conf.Library, l)
	lib.Scan()
	saver, err := screenshot.NewSaver(screenshot.Options{Folder: t.TempDir(), Label: true})
	if err != nil {
		t.Fatalf("saver fail: %v", err)
	}
	return &Viewer{
		conf:     conf,
		log:      l,
		lib:      lib,
		hub:      NewHub(l),
		saver:    saver,
		store:    storage.New(config.Storage{}, l),
		renderer: NewRenderer(conf, lib, l),
	}
}

func TestShadersHandler(t *testing.T) {
	v := testViewer(t)
	w := httptest.NewRecorder()
	v.handleShaders(w, httptest.NewRequest(http.MethodGet, "/shaders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wrong status %v", w.Code)
	}
	var list struct {
		Current string
		Shaders []struct {
			Name   string
			Type   string
			Vertex bool
		}
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if list.Current != "" {
		t.Errorf("wrong current shader %v", list.Current)
	}
	found := map[string]bool{}
	for _, s := range list.Shaders {
		found[s.Name] = true
		if s.Name == "wave" && !s.Vertex {
			t.Errorf("wave should have a vertex pair")
		}
	}
	for _, name := range []string{"gradient", "plasma", "circles", "wave"} {
		if !found[name] {
			t.Errorf("%v is not listed", name)
		}
	}
	if found["neon"] {
		t.Errorf("neon should be ignored")
	}
}

func TestUseHandler(t *testing.T) {
	v := testViewer(t)

	w := httptest.NewRecorder()
	v.handleUse(w, httptest.NewRequest(http.MethodGet, "/use?name=gradient", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wrong status %v", w.Code)
	}
	var resp struct{ Name string }
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Name != "gradient" {
		t.Errorf("wrong name %v", resp.Name)
	}

	w = httptest.NewRecorder()
	v.handleUse(w, httptest.NewRequest(http.MethodGet, "/use?name=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("wrong status %v for an unknown shader", w.Code)
	}

	w = httptest.NewRecorder()
	v.handleUse(w, httptest.NewRequest(http.MethodGet, "/use", nil))
	if w.Code != http.StatusOK {
		t.Errorf("wrong status %v for the built-in shader", w.Code)
	}
}

func TestFrameHandler(t *testing.T) {
	v := testViewer(t)
	w := httptest.NewRecorder()
	v.handleFrame(w, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wrong status %v", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("wrong content type %v", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("bad image: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("wrong image size %v", img.Bounds())
	}
}

func TestScreenshotHandler(t *testing.T) {
	v := testViewer(t)
	w := httptest.NewRecorder()
	v.handleScreenshot(w, httptest.NewRequest(http.MethodGet, "/screenshot", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wrong status %v", w.Code)
	}
	var resp struct {
		File      string
		Published bool
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.File == "" {
		t.Fatal("no file in the response")
	}
	if _, err := os.Stat(resp.File); err != nil {
		t.Errorf("no file: %v", err)
	}
	if resp.Published {
		t.Errorf("published with a noop storage")
	}
}

func TestCheckLibrary(t *testing.T) {
	l := logger.Default()
	data := shaderZip(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	conf := config.ViewerConfig{
		Download: config.Download{URL: srv.URL + "/pack.zip", ExtLock: filepath.Join(dir, ".lock")},
		Library:  config.Library{BasePath: filepath.Join(dir, "shaders"), Supported: []string{"frag"}},
	}
	if err := CheckLibrary(conf, l); err != nil {
		t.Fatalf("sync fail: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "shaders", "pack.frag")); err != nil {
		t.Errorf("no unpacked shader: %v", err)
	}

	// the second run should see the unpacked files
	before := hits
	if err := CheckLibrary(conf, l); err != nil {
		t.Fatalf("sync fail: %v", err)
	}
	if hits != before {
		t.Errorf("repeated download, %v hits", hits)
	}
}

func shaderZip(t *testing.T) []byte {
	t.Helper()
	data, err := zip.Compress([]byte("void main() { gl_FragColor = vec4(1.0); }"), "pack.frag")
	if err != nil {
		t.Fatalf("zip fail: %v", err)
	}
	return data
}
