package downloader

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glcage/glcage/pkg/compression/zip"
	"github.com/glcage/glcage/pkg/logger"
)

func TestDownloadUnpack(t *testing.T) {
	pack, err := zip.Compress([]byte("void main() {}"), "pack.frag")
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pack.zip" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(pack)
	}))
	defer server.Close()

	dest := t.TempDir()
	d := NewDefaultDownloader(logger.Default())
	files, fails := d.Download(dest,
		Download{Key: "pack", Address: server.URL + "/pack.zip"},
		Download{Key: "miss", Address: server.URL + "/miss.zip"},
	)

	if len(fails) != 1 || fails[0] != "miss" {
		t.Errorf("expected the miss key to fail, got %v", fails)
	}
	if len(files) != 1 {
		t.Errorf("expected one processed file, got %v", files)
	}
	if _, err := os.Stat(filepath.Join(dest, "pack.frag")); err != nil {
		t.Errorf("no unpacked file, %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "pack.zip")); err == nil {
		t.Errorf("the archive should be deleted after unpacking")
	}
}
