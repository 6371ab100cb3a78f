package screenshot

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(Options{Folder: dir, Label: true, MaxSize: 16})
	if err != nil {
		t.Fatal(err)
	}

	img := FromRGBA(32, 24, make([]byte, 32*24*4))
	path, err := saver.Save("shot.png", img, "gradient 00:01")
	if err != nil {
		t.Fatalf("save fail, %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("no file, %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a png, %v", err)
	}
	if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 12 {
		t.Errorf("wrong size after shrink, %v", decoded.Bounds())
	}
}

func TestShrinkKeepsSmall(t *testing.T) {
	img := FromRGBA(8, 8, make([]byte, 8*8*4))
	if out := Shrink(img, 16); out != img {
		t.Errorf("small images should pass through")
	}
}

func TestFlipV(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2*4; x++ {
			img.Pix[y*img.Stride+x] = byte(y)
		}
	}
	FlipV(img)
	if img.Pix[0] != 2 || img.Pix[2*img.Stride] != 0 {
		t.Errorf("rows are not flipped")
	}
	if img.Pix[img.Stride] != 1 {
		t.Errorf("the middle row moved")
	}
}

func TestFromRGBA(t *testing.T) {
	pix := make([]byte, 4*2*4)
	img := FromRGBA(4, 2, pix)
	if img.Stride != 16 {
		t.Errorf("wrong stride, %v", img.Stride)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("wrong bounds, %v", img.Bounds())
	}
	pix[0] = 42
	if img.Pix[0] != 42 {
		t.Errorf("the image should share the pixel buffer")
	}
}
