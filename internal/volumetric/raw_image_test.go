package volumetric

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRawRGBA(t *testing.T) {
	img, err := NewImage(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pix {
		img.Pix[i] = float32(i)*0.25 - 1 // unclamped on purpose
	}
	path := filepath.Join(t.TempDir(), "frame.rgba.sz")
	if err := SaveRawRGBA(img, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadRawRGBA(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 3 || got.Height != 2 {
		t.Fatalf("size %dx%d", got.Width, got.Height)
	}
	for i := range img.Pix {
		if got.Pix[i] != img.Pix[i] {
			t.Fatalf("sample %d: %g != %g", i, got.Pix[i], img.Pix[i])
		}
	}
}

func TestSaveRawRGBARejectsMismatch(t *testing.T) {
	img := &Image{Width: 2, Height: 2, Pix: make([]float32, 3)}
	if err := SaveRawRGBA(img, filepath.Join(t.TempDir(), "x.rgba.sz")); err == nil {
		t.Fatal("mismatched buffer accepted")
	}
}
