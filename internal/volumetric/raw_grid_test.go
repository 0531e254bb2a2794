package volumetric

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

func TestSaveLoadGrid(t *testing.T) {
	g, err := NewGrid(3, 4, 5, mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3}, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.Buf {
		g.Buf[i] = float32(i)*0.5 - 3
	}
	path := filepath.Join(t.TempDir(), "sub", "grid.vol.zst")
	if err := g.SaveGrid(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Nx != 3 || got.Ny != 4 || got.Nz != 5 || got.Min != g.Min || got.Max != g.Max || got.Default != 0.75 {
		t.Fatalf("header mismatch: %+v", got)
	}
	for i := range g.Buf {
		if got.Buf[i] != g.Buf[i] {
			t.Fatalf("voxel %d: %g != %g", i, got.Buf[i], g.Buf[i])
		}
	}
	p := mgl32.Vec3{0.1, 0.2, 0.3}
	if got.Read(p) != g.Read(p) {
		t.Fatalf("loaded grid reads differently")
	}
}

func writeZstd(t *testing.T, path string, data ...interface{}) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range data {
		if err := binary.Write(enc, binary.LittleEndian, d); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGridRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	hdr := gridHeader{Magic: gridMagic, Nx: 2, Ny: 2, Nz: 2, Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}}

	bad := hdr
	bad.Magic = [4]byte{'N', 'O', 'P', 'E'}
	magic := filepath.Join(dir, "magic.vol.zst")
	writeZstd(t, magic, &bad, make([]float32, 8))
	if _, err := LoadGrid(magic); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad magic: expected ErrInvalidArgument, got %v", err)
	}

	flat := hdr
	flat.Nx = 1
	res := filepath.Join(dir, "res.vol.zst")
	writeZstd(t, res, &flat, make([]float32, 4))
	if _, err := LoadGrid(res); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad resolution: expected ErrInvalidArgument, got %v", err)
	}

	short := filepath.Join(dir, "short.vol.zst")
	writeZstd(t, short, &hdr, make([]float32, 5))
	if _, err := LoadGrid(short); err == nil {
		t.Fatal("truncated body accepted")
	}

	long := filepath.Join(dir, "long.vol.zst")
	writeZstd(t, long, &hdr, make([]float32, 9))
	if _, err := LoadGrid(long); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("trailing data: expected ErrInvalidArgument, got %v", err)
	}

	if _, err := LoadGrid(filepath.Join(dir, "missing.vol.zst")); err == nil {
		t.Fatal("missing file accepted")
	}
}
