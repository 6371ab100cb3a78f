package viewer

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPackFloats(t *testing.T) {
	values := []float32{-1, -0.5, 0, 0.25, 1}
	data := packFloats(values...)
	if len(data) != len(values)*4 {
		t.Errorf("wrong size %v", len(data))
	}
	for i, v := range values {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		if got != v {
			t.Errorf("wrong value %v at %v, expected %v", got, i, v)
		}
	}
}

func TestNoisePixels(t *testing.T) {
	pix := noisePixels()
	if len(pix) != noiseSide*noiseSide*4 {
		t.Errorf("wrong size %v", len(pix))
	}
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("transparent pixel at %v", i)
		}
	}
}

func TestFrameCopy(t *testing.T) {
	f := Frame{W: 2, H: 1, Seq: 7, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	c := f.Copy()
	if c.W != f.W || c.H != f.H || c.Seq != f.Seq {
		t.Errorf("wrong copy %v", c)
	}
	c.Pix[0] = 9
	if f.Pix[0] != 1 {
		t.Errorf("copy shares the buffer")
	}
}

func TestDisplayName(t *testing.T) {
	if name := displayName(""); name != "(built-in)" {
		t.Errorf("wrong name %v", name)
	}
	if name := displayName("plasma"); name != "plasma" {
		t.Errorf("wrong name %v", name)
	}
}
