package volumetric

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

// gridMagic opens every zstd compressed grid file.
var gridMagic = [4]byte{'V', 'O', 'L', '1'}

// gridHeader is the fixed little-endian header written before the voxels.
type gridHeader struct {
	Magic      [4]byte
	Nx, Ny, Nz int32
	Min, Max   [3]float32
	Default    float32
}

// SaveGrid writes g as a zstd compressed stream: header followed by
// Nx*Ny*Nz float32 values in buffer order.
func (g *Grid) SaveGrid(path string) error {
	exp64 := int64(g.Nx) * int64(g.Ny) * int64(g.Nz)
	if int64(len(g.Buf)) != exp64 {
		return fmt.Errorf("Buf length mismatch: got %d, expected %d (Nx*Ny*Nz)", len(g.Buf), exp64)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(enc)
	hdr := gridHeader{
		Magic:   gridMagic,
		Nx:      int32(g.Nx),
		Ny:      int32(g.Ny),
		Nz:      int32(g.Nz),
		Min:     g.Min,
		Max:     g.Max,
		Default: g.Default,
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		enc.Close()
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, g.Buf); err != nil {
		enc.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// LoadGrid reads a grid written by SaveGrid. The header is validated with the
// same rules as NewGrid.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	r := bufio.NewReader(dec)

	var hdr gridHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read grid header: %w", err)
	}
	if hdr.Magic != gridMagic {
		return nil, fmt.Errorf("not a grid file (magic %q): %w", hdr.Magic[:], ErrInvalidArgument)
	}
	g, err := NewGrid(int(hdr.Nx), int(hdr.Ny), int(hdr.Nz), mgl32.Vec3(hdr.Min), mgl32.Vec3(hdr.Max), hdr.Default)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, g.Buf); err != nil {
		return nil, fmt.Errorf("read grid body: %w", err)
	}
	if _, err := r.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after %d voxels: %w", len(g.Buf), ErrInvalidArgument)
	}
	return g, nil
}
