package gl

import (
	"errors"

	"github.com/go-gl/gl/v2.1/gl"
)

var ErrNoVertexArrays = errors.New("gl: vertex array objects are not supported")

// 2.1-class contexts expose VAOs through an extension only.
var vertexArrayExtensions = []string{
	"GL_ARB_vertex_array_object",
	"GL_APPLE_vertex_array_object",
}

// VertexArray is a vertex array object holding attribute layout state.
type VertexArray struct {
	ctx *Context
	id  uint32
}

// HasVertexArrays reports whether the context supports VAOs.
func (c *Context) HasVertexArrays() bool {
	for _, name := range vertexArrayExtensions {
		if c.HasExtension(name) {
			return true
		}
	}
	return false
}

// NewVertexArray creates a vertex array object.
func (c *Context) NewVertexArray() (*VertexArray, error) {
	if !c.HasVertexArrays() {
		return nil, ErrNoVertexArrays
	}
	v := &VertexArray{ctx: c}
	gl.GenVertexArrays(1, &v.id)
	return v, nil
}

// Bind makes the vertex array current.
func (v *VertexArray) Bind() { v.ctx.bindVertexArray(v.id) }

// Unbind deselects any vertex array.
func (v *VertexArray) Unbind() { v.ctx.bindVertexArray(0) }

// FloatAttrib records the layout of a float vertex attribute read
// from the currently bound array buffer. Invalid locations are
// skipped, consistent with the lookup semantics of Program.
func (v *VertexArray) FloatAttrib(loc Location, size int32, stride int32, offset int) {
	if !loc.Valid() {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

// Release deletes the vertex array. It is safe to call more than once.
func (v *VertexArray) Release() {
	if v.id == 0 {
		return
	}
	if v.ctx.vao == v.id {
		v.ctx.bindVertexArray(0)
	}
	gl.DeleteVertexArrays(1, &v.id)
	v.id = 0
}
