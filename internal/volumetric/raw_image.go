package volumetric

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// SaveRawRGBA dumps the unclamped float buffer as a snappy framed stream:
// Width, Height as int32 followed by Width*Height*4 float32 (little-endian).
func SaveRawRGBA(img *Image, path string) error {
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("negative dimensions: Width=%d Height=%d", img.Width, img.Height)
	}
	exp64 := int64(img.Width) * int64(img.Height) * 4
	if int64(len(img.Pix)) != exp64 {
		return fmt.Errorf("Pix length mismatch: got %d, expected %d (Width*Height*4)", len(img.Pix), exp64)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sw := snappy.NewBufferedWriter(f)
	w := bufio.NewWriter(sw)
	if err := binary.Write(w, binary.LittleEndian, [2]int32{int32(img.Width), int32(img.Height)}); err != nil {
		sw.Close()
		return err
	}
	if exp64 > 0 {
		if err := binary.Write(w, binary.LittleEndian, img.Pix); err != nil {
			sw.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		sw.Close()
		return err
	}
	if err := sw.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// LoadRawRGBA reads an image written by SaveRawRGBA.
func LoadRawRGBA(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(snappy.NewReader(f))
	var dims [2]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	img, err := NewImage(int(dims[0]), int(dims[1]))
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, img.Pix); err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return img, nil
}
