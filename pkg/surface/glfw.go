package surface

import (
	"fmt"
	"unsafe"

	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/thread"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW is an offscreen GL context over a hidden 1x1 GLFW window.
type GLFW struct {
	w   *glfw.Window
	log *logger.Logger
}

func NewGLFW(cfg Config, log *logger.Logger) (*GLFW, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)

	switch cfg.Profile {
	case ProfileAuto:
	case ProfileCore:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	case ProfileES:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, int(cfg.VersionMajor))
		glfw.WindowHint(glfw.ContextVersionMinor, int(cfg.VersionMinor))
	case ProfileCompat:
		if cfg.VersionMajor >= 3 {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
		}
	default:
		glfw.Terminate()
		return nil, fmt.Errorf("unsupported gl profile: %v", cfg.Profile)
	}

	g := &GLFW{log: log}
	var err error
	// In OSX 10.14+ window creation and context creation must happen in the main thread
	thread.MainMaybe(func() {
		g.w, err = glfw.CreateWindow(1, 1, "glcage", nil, nil)
	})
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: %w", err)
	}
	g.w.MakeContextCurrent()
	log.Debug().Msgf("glfw surface with a %v context", cfg.Profile)
	return g, nil
}

// Bind makes the context current on the calling OS thread.
func (g *GLFW) Bind() error {
	g.w.MakeContextCurrent()
	return nil
}

func (g *GLFW) ProcAddress(name string) unsafe.Pointer { return glfw.GetProcAddress(name) }

func (g *GLFW) SwapInterval(n int) error {
	glfw.SwapInterval(n)
	return nil
}

func (g *GLFW) Destroy() error {
	// In OSX 10.14+ window deletion must happen in the main thread
	thread.MainMaybe(func() {
		g.w.MakeContextCurrent()
		g.w.Destroy()
		glfw.Terminate()
	})
	return nil
}

func tryInitGLFW() error {
	if err := glfw.Init(); err != nil {
		return err
	}
	glfw.Terminate()
	return nil
}
