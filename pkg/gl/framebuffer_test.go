package gl

import (
	"testing"

	"github.com/go-gl/gl/v2.1/gl"
)

func TestPixelFormatInfo(t *testing.T) {
	tests := []struct {
		format PixelFormat
		xtype  uint32
		pix    uint32
		bpp    int
	}{
		{format: RGBA8888, xtype: gl.UNSIGNED_BYTE, pix: gl.RGBA, bpp: 4},
		{format: BGRA5551, xtype: gl.UNSIGNED_SHORT_5_5_5_1, pix: gl.BGRA, bpp: 2},
		{format: RGB565, xtype: gl.UNSIGNED_SHORT_5_6_5, pix: gl.RGB, bpp: 2},
		{format: BGRA8888Rev, xtype: gl.UNSIGNED_INT_8_8_8_8_REV, pix: gl.BGRA, bpp: 4},
	}
	for _, test := range tests {
		xtype, pix, bpp, err := test.format.info()
		if err != nil {
			t.Errorf("unexpected error for %v, %v", test.format, err)
		}
		if xtype != test.xtype || pix != test.pix || bpp != test.bpp {
			t.Errorf("wrong mapping for %v: %v %v %v", test.format, xtype, pix, bpp)
		}
		if test.format.Bytes() != test.bpp {
			t.Errorf("wrong pixel size for %v", test.format)
		}
	}

	if _, _, _, err := PixelFormat(99).info(); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
	if PixelFormat(99).Bytes() != 0 {
		t.Errorf("unknown format should have no size")
	}
}

func TestLocation(t *testing.T) {
	if noLocation.Valid() {
		t.Errorf("the sentinel location is valid")
	}
	if !Location(0).Valid() {
		t.Errorf("location 0 is invalid")
	}
	if !Location(7).Valid() {
		t.Errorf("location 7 is invalid")
	}
}
