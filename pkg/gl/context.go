// Package gl wraps an OpenGL 2.1-class context with explicit
// resource handles (programs, buffers, vertex arrays, textures,
// framebuffers) and small caching and disposal helpers.
package gl

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/glcage/glcage/pkg/logger"
	"github.com/go-gl/gl/v2.1/gl"
)

// Context tracks the binding state of one native OpenGL context.
// All methods must be called from the OS thread that owns the
// context (see thread/mainthread and runtime.LockOSThread).
type Context struct {
	log *logger.Logger

	// current bindings, mutated only by the binding methods
	program    uint32
	vao        uint32
	arrayBuf   uint32
	elementBuf uint32
	frameBuf   uint32
	texUnit    uint32
	texture    uint32

	extensions map[string]struct{}
	procAddr   func(name string) unsafe.Pointer
}

// NewContext initializes the GL function pointers over an already
// current native context and returns its state tracker.
// A nil procAddr falls back to the platform default loader.
func NewContext(procAddr func(name string) unsafe.Pointer, log *logger.Logger) (*Context, error) {
	if procAddr == nil {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("gl init: %w", err)
		}
	} else {
		if err := gl.InitWithProcAddrFunc(procAddr); err != nil {
			return nil, fmt.Errorf("gl init: %w", err)
		}
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	c := &Context{
		log:        log,
		texUnit:    gl.TEXTURE0,
		extensions: parseExtensions(getString(gl.EXTENSIONS)),
		procAddr:   procAddr,
	}
	return c, nil
}

// ProcAddress returns the address of a raw GL entry point or nil
// when the context was initialized with the default loader.
func (c *Context) ProcAddress(name string) unsafe.Pointer {
	if c.procAddr == nil {
		return nil
	}
	return c.procAddr(name)
}

// Info returns the driver strings of the context.
func (c *Context) Info() (version, vendor, renderer, glsl string) {
	return getString(gl.VERSION),
		getString(gl.VENDOR),
		getString(gl.RENDERER),
		getString(gl.SHADING_LANGUAGE_VERSION)
}

// LogDriverInfo prints the OpenGL driver information.
func (c *Context) LogDriverInfo() {
	version, vendor, renderer, glsl := c.Info()
	c.log.Info().Msgf("[OpenGL] Version: %v", version)
	c.log.Info().Msgf("[OpenGL] Vendor: %v", vendor)
	// This string is often the name of the GPU.
	// In the case of Mesa3d, it would be i.e "Gallium 0.4 on NVA8".
	c.log.Info().Msgf("[OpenGL] Renderer: %v", renderer)
	c.log.Info().Msgf("[OpenGL] GLSL Version: %v", glsl)
}

// HasExtension reports whether the context advertises a named extension.
func (c *Context) HasExtension(name string) bool {
	_, ok := c.extensions[name]
	return ok
}

// Extensions returns the sorted extension list of the context.
func (c *Context) Extensions() []string {
	list := make([]string, 0, len(c.extensions))
	for name := range c.extensions {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Error drains the GL error queue into a single error value
// or nil when the queue is empty.
func (c *Context) Error() error {
	var codes []string
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		codes = append(codes, fmt.Sprintf("0x%X", e))
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("gl error: %s", strings.Join(codes, ", "))
}

// Reset unbinds the program, vertex array, buffers, framebuffer and
// texture, returns to texture unit zero, clears the tracked state and
// drains the GL error queue.
func (c *Context) Reset() {
	gl.UseProgram(0)
	if c.HasVertexArrays() {
		gl.BindVertexArray(0)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	c.program = 0
	c.vao = 0
	c.arrayBuf = 0
	c.elementBuf = 0
	c.frameBuf = 0
	c.texUnit = gl.TEXTURE0
	c.texture = 0

	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
	}
}

func (c *Context) useProgram(id uint32) {
	if c.program == id {
		return
	}
	gl.UseProgram(id)
	c.program = id
}

func (c *Context) bindVertexArray(id uint32) {
	if c.vao == id {
		return
	}
	gl.BindVertexArray(id)
	c.vao = id
}

func (c *Context) bindBuffer(target uint32, id uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if c.arrayBuf == id {
			return
		}
		c.arrayBuf = id
	case gl.ELEMENT_ARRAY_BUFFER:
		if c.elementBuf == id {
			return
		}
		c.elementBuf = id
	}
	gl.BindBuffer(target, id)
}

func (c *Context) bindFramebuffer(id uint32) {
	if c.frameBuf == id {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
	c.frameBuf = id
}

func (c *Context) activeTexture(unit uint32) {
	if c.texUnit == unit {
		return
	}
	gl.ActiveTexture(unit)
	c.texUnit = unit
}

func (c *Context) bindTexture(id uint32) {
	if c.texture == id {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	c.texture = id
}

// parseExtensions splits the space-separated extension string of
// the GL 2.1 surface into a lookup set.
func parseExtensions(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range strings.Fields(s) {
		set[name] = struct{}{}
	}
	return set
}

func getString(name uint32) string {
	ptr := gl.GetString(name)
	if ptr == nil {
		return ""
	}
	return gl.GoStr(ptr)
}
