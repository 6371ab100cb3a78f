package zip

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/glcage/glcage/pkg/logger"
)

func TestCompression(t *testing.T) {
	type args struct {
		data []byte
		name string
	}
	tests := []struct {
		name     string
		args     args
		want     []byte
		wantName string
		wantErr  bool
	}{
		{
			name: "a simple compression/decompression check",
			args: args{
				data: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
				name: "test",
			},
			want:     []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
			wantName: "test",
			wantErr:  false,
		},
		{
			name: "a shader text roundtrip",
			args: args{
				data: []byte("void main() { gl_FragColor = vec4(1.0); }"),
				name: "solid.frag",
			},
			want:     []byte("void main() { gl_FragColor = vec4(1.0); }"),
			wantName: "solid.frag",
			wantErr:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compress(tt.args.data, tt.args.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compress() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			got, name, err := Read(got)
			if name != tt.wantName {
				t.Errorf("Compress() got name = %v, want %v", name, tt.wantName)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compress() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pack.zip")
	dest := filepath.Join(dir, "out")

	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	entries := map[string]string{
		"a.frag":        "void main() {}",
		"sub/b.glsl":    "void main() {}",
		"../escape.txt": "nope",
	}
	for name, body := range entries {
		zf, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = zf.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
	if err = f.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := New(logger.Default()).Extract(src, dest)
	if err != nil {
		t.Fatalf("extract fail, %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %v", files)
	}
	for _, name := range []string{"a.frag", "sub/b.glsl"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("no extracted file %v, %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err == nil {
		t.Errorf("a file escaped the destination dir")
	}
}
