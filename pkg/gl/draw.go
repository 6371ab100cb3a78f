package gl

import "github.com/go-gl/gl/v2.1/gl"

// Mode is a primitive draw mode.
type Mode uint32

const (
	Triangles     Mode = gl.TRIANGLES
	TriangleStrip Mode = gl.TRIANGLE_STRIP
	Lines         Mode = gl.LINES
	LineStrip     Mode = gl.LINE_STRIP
)

// Viewport sets the render area.
func (c *Context) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }

// ClearColor sets the color buffer clear value.
func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// Clear clears the color buffer of the current render target.
func (c *Context) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

// DrawArrays draws primitives from the bound vertex data.
func (c *Context) DrawArrays(mode Mode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}
