// Package screenshot turns raw RGBA readbacks into PNG files with
// optional downscaling and a stamped text label.
package screenshot

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"path/filepath"
	"sync"

	"github.com/glcage/glcage/pkg/os"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Options struct {
	Folder string
	Label  bool
	// MaxSize limits the longest image side, 0 keeps the original size.
	MaxSize int
}

type Saver struct {
	opts Options
	e    *png.Encoder
}

type pool struct{ sync.Pool }

func pngBuf() *pool                      { return &pool{sync.Pool{New: func() any { return &png.EncoderBuffer{} }}} }
func (p *pool) Get() *png.EncoderBuffer  { return p.Pool.Get().(*png.EncoderBuffer) }
func (p *pool) Put(b *png.EncoderBuffer) { p.Pool.Put(b) }

func NewSaver(opts Options) (*Saver, error) {
	if opts.Folder != "" {
		if err := os.CheckCreateDir(opts.Folder); err != nil {
			return nil, err
		}
	}
	return &Saver{
		opts: opts,
		e: &png.Encoder{
			CompressionLevel: png.BestSpeed,
			BufferPool:       pngBuf(),
		},
	}, nil
}

// Save encodes the image into a PNG file under the saver folder,
// downscaled and labeled per the options, and returns the full path.
func (s *Saver) Save(name string, img *image.RGBA, label string) (string, error) {
	if s.opts.MaxSize > 0 {
		img = Shrink(img, s.opts.MaxSize)
	}
	if s.opts.Label && label != "" {
		AddLabel(img, 2, 2, label)
	}
	data, err := s.Encode(img)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.opts.Folder, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Encode returns the image as in-memory PNG bytes.
func (s *Saver) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	x, y := img.Bounds().Dx(), img.Bounds().Dy()
	buf.Grow(x * y * 4)
	if err := s.e.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromRGBA wraps a raw w x h RGBA readback into an image without copying.
func FromRGBA(w, h int, pix []byte) *image.RGBA {
	return &image.RGBA{Pix: pix, Stride: w << 2, Rect: image.Rect(0, 0, w, h)}
}

// FlipV flips the image rows in place, for bottom-up readbacks.
func FlipV(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}

// Shrink returns the image downscaled with bilinear interpolation so
// that its longest side fits the max, or the image itself when it
// already fits.
func Shrink(src *image.RGBA, max int) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	side := w
	if h > side {
		side = h
	}
	if side <= max {
		return src
	}
	scale := float64(max) / float64(side)
	out := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out
}

// AddLabel stamps white text on a black box at the given position.
func AddLabel(img *image.RGBA, x, y int, label string) {
	draw.Draw(img, image.Rect(x, y, x+len(label)*7+3, y+12), &image.Uniform{C: color.RGBA{}}, image.Point{}, draw.Src)
	(&font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6((x + 2) * 64), Y: fixed.Int26_6((y + 10) * 64)},
	}).DrawString(label)
}
