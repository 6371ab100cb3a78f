package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type rtFunc func(req *http.Request) *http.Response

func (f rtFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req), nil }

func newTestClient(fn rtFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func TestOracleSave(t *testing.T) {
	client, err := NewOracleDataStorageClient("test-url/")
	if err != nil {
		t.Fatalf("no client, %v", err)
	}
	client.client = newTestClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("")),
			Header: map[string][]string{
				// the hash of "test"
				"Opc-Content-Md5": {"CY9rzUYh03PK3k6DJie09g=="},
			},
		}
	})

	file := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(file, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err = client.Save("shot.png", file); err != nil {
		t.Errorf("can't save, err: %v", err)
	}
}

func TestOracleLoad(t *testing.T) {
	client, _ := NewOracleDataStorageClient("test-url/")
	client.client = newTestClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("test")),
			Header: map[string][]string{
				"Content-Md5": {"CY9rzUYh03PK3k6DJie09g=="},
			},
		}
	})

	data, err := client.Load("shot.png")
	if err != nil {
		t.Errorf("can't load, err: %v", err)
	}
	if string(data) != "test" {
		t.Errorf("wrong data, %v", string(data))
	}
}

func TestStorageProviders(t *testing.T) {
	noop := NewNoop()
	if !noop.IsNoop() {
		t.Errorf("noop is not noop")
	}
	if err := noop.Save("any", "any"); err != nil {
		t.Errorf("noop save should be silent, %v", err)
	}
	if _, err := noop.Load("any"); err == nil {
		t.Errorf("noop load should fail")
	}

	if _, err := NewOracleDataStorageClient(""); err == nil {
		t.Errorf("oracle without an access URL should fail")
	}
}
