package gl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
)

// Target is a buffer binding point.
type Target uint32

const (
	ArrayBuffer        Target = gl.ARRAY_BUFFER
	ElementArrayBuffer Target = gl.ELEMENT_ARRAY_BUFFER
)

// Usage is a buffer data usage hint.
type Usage uint32

const (
	StaticDraw  Usage = gl.STATIC_DRAW
	DynamicDraw Usage = gl.DYNAMIC_DRAW
	StreamDraw  Usage = gl.STREAM_DRAW
)

var (
	ErrNoPayload = errors.New("gl: buffer payload is not retained")
	ErrRange     = errors.New("gl: buffer range is out of bounds")
)

// Buffer is a GL data buffer which optionally retains its CPU-side
// payload for partial re-uploads with SubData.
type Buffer struct {
	ctx    *Context
	id     uint32
	target Target
	usage  Usage

	payload []byte
	views   map[uint64][]byte
}

// NewBuffer creates a buffer, uploads data and retains the payload
// so that later sub-range writes can read from it.
func (c *Context) NewBuffer(target Target, usage Usage, data []byte) *Buffer {
	b := c.newBuffer(target, usage)
	b.payload = data
	b.views = make(map[uint64][]byte)
	b.upload(data)
	return b
}

// NewBufferNoRetain creates a buffer and uploads data without keeping
// the payload around, for one-shot geometry.
func (c *Context) NewBufferNoRetain(target Target, usage Usage, data []byte) *Buffer {
	b := c.newBuffer(target, usage)
	b.upload(data)
	return b
}

func (c *Context) newBuffer(target Target, usage Usage) *Buffer {
	b := &Buffer{ctx: c, target: target, usage: usage}
	gl.GenBuffers(1, &b.id)
	return b
}

// Bind makes the buffer current on its target.
func (b *Buffer) Bind() { b.ctx.bindBuffer(uint32(b.target), b.id) }

// Data replaces the whole buffer storage. A retaining buffer swaps
// its payload for the new data and drops the memoized range views.
func (b *Buffer) Data(data []byte) {
	if b.views != nil {
		b.payload = data
		b.views = make(map[uint64][]byte)
	}
	b.upload(data)
}

// Payload returns the retained CPU-side copy of the buffer or nil.
// Callers mutate it in place and push changes with SubData.
func (b *Buffer) Payload() []byte { return b.payload }

// SubData uploads the [begin:end) byte range of the retained payload
// into the same range of the buffer storage.
func (b *Buffer) SubData(begin, end int) error {
	view, err := b.subView(begin, end)
	if err != nil {
		return err
	}
	if len(view) == 0 {
		return nil
	}
	b.Bind()
	gl.BufferSubData(uint32(b.target), begin, len(view), gl.Ptr(view))
	return nil
}

// subView memoizes the [begin:end) slice of the retained payload.
// The cache key is an exact function of the two bounds, so distinct
// ranges never collide, and a repeated range reuses its slice header.
func (b *Buffer) subView(begin, end int) ([]byte, error) {
	if b.views == nil {
		return nil, ErrNoPayload
	}
	if begin < 0 || end < begin || end > len(b.payload) {
		return nil, fmt.Errorf("%w: [%v:%v) of %v", ErrRange, begin, end, len(b.payload))
	}
	key := rangeKey(begin, end)
	if view, ok := b.views[key]; ok {
		return view, nil
	}
	view := b.payload[begin:end:end]
	b.views[key] = view
	return view, nil
}

// rangeKey packs a byte range into a single map key.
func rangeKey(begin, end int) uint64 {
	return uint64(begin)<<32 | uint64(end)&0xffffffff
}

func (b *Buffer) upload(data []byte) {
	b.Bind()
	if len(data) == 0 {
		gl.BufferData(uint32(b.target), 0, nil, uint32(b.usage))
		return
	}
	gl.BufferData(uint32(b.target), len(data), gl.Ptr(data), uint32(b.usage))
}

// Release deletes the buffer, unbinding it first when it is current.
// It is safe to call more than once.
func (b *Buffer) Release() {
	if b.id == 0 {
		return
	}
	if b.ctx.arrayBuf == b.id {
		b.ctx.bindBuffer(uint32(ArrayBuffer), 0)
	}
	if b.ctx.elementBuf == b.id {
		b.ctx.bindBuffer(uint32(ElementArrayBuffer), 0)
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
	b.payload = nil
	b.views = nil
}
