// Package surface creates hidden native windows whose only purpose
// is to own an offscreen OpenGL context.
package surface

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/glcage/glcage/pkg/logger"
)

// Profile selects the kind of GL context to request.
type Profile int

const (
	// ProfileAuto lets the driver pick a default context.
	ProfileAuto Profile = iota
	ProfileCompat
	ProfileCore
	ProfileES
)

func (p Profile) String() string {
	switch p {
	case ProfileAuto:
		return "auto"
	case ProfileCompat:
		return "compat"
	case ProfileCore:
		return "core"
	case ProfileES:
		return "es"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

type Config struct {
	Profile      Profile
	VersionMajor uint
	VersionMinor uint
}

// Surface is a hidden window with a current-able GL context.
type Surface interface {
	// Bind makes the GL context current on the calling OS thread.
	Bind() error
	// ProcAddress resolves a GL entry point through the window library.
	ProcAddress(name string) unsafe.Pointer
	// SwapInterval sets the buffer swap interval of the current
	// context, zero turns the vertical sync off.
	SwapInterval(n int) error
	// Destroy releases the context with its window. Call it once.
	Destroy() error
}

// New creates a surface with the given provider, either sdl or glfw.
func New(provider string, cfg Config, log *logger.Logger) (Surface, error) {
	switch strings.ToLower(provider) {
	case "", "sdl":
		return NewSDL(cfg, log)
	case "glfw":
		return NewGLFW(cfg, log)
	default:
		return nil, fmt.Errorf("unknown surface provider: %v", provider)
	}
}

// TryInit probes whether the provider can start on this machine,
// without leaving a window or a context behind.
func TryInit(provider string) error {
	switch strings.ToLower(provider) {
	case "", "sdl":
		return tryInitSDL()
	case "glfw":
		return tryInitGLFW()
	default:
		return fmt.Errorf("unknown surface provider: %v", provider)
	}
}
