package surface

import (
	"fmt"
	"unsafe"

	"github.com/glcage/glcage/pkg/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL is an offscreen GL context over a hidden 1x1 SDL window.
type SDL struct {
	w   *sdl.Window
	ctx sdl.GLContext
	log *logger.Logger
}

func NewSDL(cfg Config, log *logger.Logger) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	if cfg.Profile != ProfileAuto {
		if err := setGLAttrs(cfg); err != nil {
			return nil, err
		}
	}

	w, err := sdl.CreateWindow("glcage", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 1, 1,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		err1 := w.Destroy()
		return nil, fmt.Errorf("gl context: %w, destroy err: %v", err, err1)
	}

	if err = w.GLMakeCurrent(ctx); err != nil {
		return nil, fmt.Errorf("gl bind: %w", err)
	}

	log.Debug().Msgf("sdl surface with a %v context", cfg.Profile)
	return &SDL{w: w, ctx: ctx, log: log}, nil
}

func setGLAttrs(cfg Config) error {
	set := sdl.GLSetAttribute
	switch cfg.Profile {
	case ProfileCore:
		return set(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	case ProfileES:
		for _, a := range [][2]int{
			{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_ES},
			{sdl.GL_CONTEXT_MAJOR_VERSION, int(cfg.VersionMajor)},
			{sdl.GL_CONTEXT_MINOR_VERSION, int(cfg.VersionMinor)},
		} {
			if err := set(sdl.GLattr(a[0]), a[1]); err != nil {
				return err
			}
		}
		return nil
	case ProfileCompat:
		return set(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY)
	default:
		return fmt.Errorf("unsupported gl profile: %v", cfg.Profile)
	}
}

// Bind makes the context current on the calling OS thread.
func (s *SDL) Bind() error { return s.w.GLMakeCurrent(s.ctx) }

func (s *SDL) ProcAddress(name string) unsafe.Pointer { return sdl.GLGetProcAddress(name) }

func (s *SDL) SwapInterval(n int) error { return sdl.GLSetSwapInterval(n) }

func (s *SDL) Destroy() error {
	sdl.GLDeleteContext(s.ctx)
	err := s.w.Destroy()
	sdl.Quit()
	return err
}

func tryInitSDL() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	sdl.Quit()
	return nil
}
