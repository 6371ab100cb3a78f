package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glcage/glcage/pkg/logger"
)

func TestGoogleSaveLoad(t *testing.T) {
	client, _ := NewGoogleCloudClient("glcage-shots", logger.Default())
	if client == nil {
		t.Skip("Cloud storage is not initialized")
	}
	data := []byte("Test Hello")

	file := filepath.Join(t.TempDir(), "test_cloud_save")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Errorf("File is not writable %v", err)
	}

	if err := client.Save("Test", file); err != nil {
		t.Errorf("can't save, err: %v", err)
	}
	loadData, err := client.Load("Test")
	if err != nil {
		t.Errorf("can't load, err: %v", err)
	}
	if string(data) != string(loadData) {
		t.Errorf("the loaded data differs")
	}
}
