package gl

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
)

// PixelFormat selects the packing of framebuffer readbacks.
type PixelFormat int

const (
	// RGBA8888 is a byte-per-channel RGBA packing.
	RGBA8888 PixelFormat = iota
	// BGRA5551 is a 16-bit packing with a 1-bit alpha.
	BGRA5551
	// RGB565 is a 16-bit packing without alpha.
	RGB565
	// BGRA8888Rev is a 32-bit packing with reversed component order.
	BGRA8888Rev
)

func (f PixelFormat) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case BGRA5551:
		return "BGRA5551"
	case RGB565:
		return "RGB565"
	case BGRA8888Rev:
		return "BGRA8888REV"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// info returns the GL type/format pair and the byte size of one pixel.
func (f PixelFormat) info() (xtype, format uint32, bpp int, err error) {
	switch f {
	case RGBA8888:
		return gl.UNSIGNED_BYTE, gl.RGBA, 4, nil
	case BGRA5551:
		return gl.UNSIGNED_SHORT_5_5_5_1, gl.BGRA, 2, nil
	case RGB565:
		return gl.UNSIGNED_SHORT_5_6_5, gl.RGB, 2, nil
	case BGRA8888Rev:
		return gl.UNSIGNED_INT_8_8_8_8_REV, gl.BGRA, 4, nil
	}
	return 0, 0, 0, fmt.Errorf("gl: unknown pixel format %v", int(f))
}

// Bytes returns the byte size of one pixel or 0 for unknown formats.
func (f PixelFormat) Bytes() int {
	_, _, bpp, _ := f.info()
	return bpp
}

// Framebuffer is an offscreen render target with a color texture and
// an optional depth/stencil renderbuffer.
type Framebuffer struct {
	ctx *Context

	id    uint32
	tex   uint32
	depth uint32

	w, h   int32
	xtype  uint32
	format uint32
	bpp    int
}

// NewFramebuffer creates a w x h offscreen target whose readbacks are
// packed with the given pixel format. The framebuffer extension is
// required on 2.1-class contexts.
func (c *Context) NewFramebuffer(w, h int, format PixelFormat, hasDepth, hasStencil bool) (*Framebuffer, error) {
	if !c.HasExtension("GL_ARB_framebuffer_object") && !c.HasExtension("GL_EXT_framebuffer_object") {
		return nil, fmt.Errorf("gl: framebuffer objects are not supported")
	}
	xtype, pixFormat, bpp, err := format.info()
	if err != nil {
		return nil, err
	}

	f := &Framebuffer{
		ctx:    c,
		w:      int32(w),
		h:      int32(h),
		xtype:  xtype,
		format: pixFormat,
		bpp:    bpp,
	}

	gl.GenFramebuffers(1, &f.id)
	c.bindFramebuffer(f.id)

	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, f.w, f.h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex, 0)
	gl.BindTexture(gl.TEXTURE_2D, c.texture)

	if hasDepth {
		gl.GenRenderbuffers(1, &f.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
		if hasStencil {
			gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, f.w, f.h)
			gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depth)
		} else {
			gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, f.w, f.h)
			gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depth)
		}
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		f.Release()
		return nil, fmt.Errorf("gl: invalid framebuffer (0x%X), %v", status, c.Error())
	}
	return f, nil
}

// Size returns the framebuffer dimensions.
func (f *Framebuffer) Size() (w, h int) { return int(f.w), int(f.h) }

// Bind makes the framebuffer the render target.
func (f *Framebuffer) Bind() { f.ctx.bindFramebuffer(f.id) }

// Unbind restores the default render target.
func (f *Framebuffer) Unbind() { f.ctx.bindFramebuffer(0) }

// ReadPixels copies the framebuffer contents into dst, which has to
// fit width x height pixels of the configured format.
func (f *Framebuffer) ReadPixels(dst []byte) error {
	need := int(f.w) * int(f.h) * f.bpp
	if len(dst) < need {
		return fmt.Errorf("gl: readback needs %v bytes, got %v", need, len(dst))
	}
	f.Bind()
	gl.ReadPixels(0, 0, f.w, f.h, f.format, f.xtype, gl.Ptr(dst))
	return nil
}

// Release deletes the framebuffer with its attachments.
// It is safe to call more than once.
func (f *Framebuffer) Release() {
	if f.id == 0 {
		return
	}
	if f.ctx.frameBuf == f.id {
		f.ctx.bindFramebuffer(0)
	}
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
	gl.DeleteFramebuffers(1, &f.id)
	f.id = 0
}
