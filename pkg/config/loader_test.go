package config

import (
	"os"
	"testing"
)

func TestConfigEnv(t *testing.T) {
	var out ViewerConfig

	_ = os.Setenv("GLCAGE_GFX_WIDTH", "1280")
	_ = os.Setenv("GLCAGE_VIEWER_RENDER_FPS", "10")
	defer func() { _ = os.Unsetenv("GLCAGE_GFX_WIDTH") }()
	defer func() { _ = os.Unsetenv("GLCAGE_VIEWER_RENDER_FPS") }()

	if err := LoadConfig(&out, ""); err != nil {
		t.Fatal(err)
	}

	if out.Gfx.Width != 1280 {
		t.Errorf("%v is not 1280", out.Gfx.Width)
	}
	if out.Viewer.Render.Fps != 10 {
		t.Errorf("%v is not 10", out.Viewer.Render.Fps)
	}
}

func TestConfigDefaults(t *testing.T) {
	var out ViewerConfig
	if err := LoadConfig(&out, ""); err != nil {
		t.Fatal(err)
	}
	if out.Gfx.Provider != "sdl" {
		t.Errorf("unexpected default provider %v", out.Gfx.Provider)
	}
	if out.Viewer.Monitoring.IsEnabled() {
		t.Errorf("monitoring should be off by default")
	}
}
