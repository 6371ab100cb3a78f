package os

import (
	"path/filepath"
	"testing"
)

func TestCheckCreateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if Exists(dir) {
		t.Errorf("dir %v shouldn't exist yet", dir)
	}
	if err := CheckCreateDir(dir); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Errorf("dir %v should exist", dir)
	}
	// second time is a no-op
	if err := CheckCreateDir(dir); err != nil {
		t.Fatal(err)
	}
}

func TestFileLock(t *testing.T) {
	lock, err := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))
	if err != nil {
		t.Fatal(err)
	}
	if err := lock.Lock(); err != nil {
		t.Fatal(err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatal(err)
	}
}
