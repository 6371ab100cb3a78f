package gl

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
)

// Texture is a 2D RGBA texture pinned to one texture unit.
type Texture struct {
	ctx  *Context
	id   uint32
	unit int32
	w, h int32
}

// NewTexture creates a w x h RGBA texture on the given unit with
// nearest filtering. A nil pixels slice allocates the storage only.
func (c *Context) NewTexture(unit int32, w, h int32, pixels []byte) *Texture {
	t := &Texture{ctx: c, unit: unit, w: w, h: h}
	gl.GenTextures(1, &t.id)
	t.Activate()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	return t
}

// Unit returns the texture unit index for sampler uniforms.
func (t *Texture) Unit() int32 { return t.unit }

// Activate selects the texture unit and binds the texture to it.
func (t *Texture) Activate() {
	t.ctx.activeTexture(uint32(gl.TEXTURE0 + t.unit))
	t.ctx.bindTexture(t.id)
}

// Update replaces the whole texture image with new RGBA pixels.
func (t *Texture) Update(pixels []byte) {
	t.Activate()
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, t.w, t.h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// Release deletes the texture. It is safe to call more than once.
func (t *Texture) Release() {
	if t.id == 0 {
		return
	}
	if t.ctx.texture == t.id {
		t.ctx.bindTexture(0)
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
