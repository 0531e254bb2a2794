package volumetric

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setSwitches overrides the package output switches for one test.
func setSwitches(t *testing.T, png, gif, raw, dsm bool) {
	t.Helper()
	oldPNG, oldGIF, oldRAW, oldDSM, oldRep := PNG, GIF, RAW, UseDSM, Reporter
	PNG, GIF, RAW, UseDSM = png, gif, raw, dsm
	Reporter = ProgressFunc(func(string, int, int) {})
	t.Cleanup(func() {
		PNG, GIF, RAW, UseDSM, Reporter = oldPNG, oldGIF, oldRAW, oldDSM, oldRep
	})
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("%s not written: %v", path, err)
	}
}

func TestRunConfigWritesAllOutputs(t *testing.T) {
	setSwitches(t, true, true, true, true)
	dir := t.TempDir()
	cfg := &Config{
		Width:   8,
		Height:  6,
		Density: GridCfg{Res: [3]int{8, 8, 8}, Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		Shape:   ShapeMovingBall,
		Camera:  CameraCfg{Position: mgl32.Vec3{0, 0, -3}},
		Steps:   32,
		Frames:  2,
		PNGOut:  filepath.Join(dir, "pngs", "frame"),
		GIFOut:  filepath.Join(dir, "anim.gif"),
		RawOut:  filepath.Join(dir, "raw", "frame"),
		GridOut: filepath.Join(dir, "grids", "vol"),
	}
	if err := cfg.applyDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := RunConfig(cfg); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{
		filepath.Join(dir, "pngs", "frame_0.png"),
		filepath.Join(dir, "pngs", "frame_1.png"),
		filepath.Join(dir, "anim.gif"),
		filepath.Join(dir, "raw", "frame_0001.rgba.sz"),
		filepath.Join(dir, "grids", "vol_density_0001.vol.zst"),
	} {
		mustExist(t, p)
	}

	shadow, err := LoadGrid(filepath.Join(dir, "grids", "vol_shadow_0001.vol.zst"))
	if err != nil {
		t.Fatal(err)
	}
	if shadow.Nx != 8 || shadow.Default != DSMDefault {
		t.Fatalf("shadow grid %dx%dx%d default %g", shadow.Nx, shadow.Ny, shadow.Nz, shadow.Default)
	}
	for i, v := range shadow.Buf {
		if v <= 0 || v > 1 {
			t.Fatalf("shadow voxel %d = %g outside (0,1]", i, v)
		}
	}

	img, err := LoadRawRGBA(filepath.Join(dir, "raw", "frame_0000.rgba.sz"))
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 8 || img.Height != 6 {
		t.Fatalf("raw frame %dx%d", img.Width, img.Height)
	}
}

func TestRunEmptyScene(t *testing.T) {
	setSwitches(t, true, false, false, false)
	dir := t.TempDir()
	out := filepath.Join(dir, "frame")
	path := writeConfig(t, `{
		"width": 4, "height": 4, "shape": "empty",
		"density": {"res": [4, 4, 4], "min": [-1, -1, -1], "max": [1, 1, 1]},
		"steps": 8, "background": [0.5, 0.5, 0.5],
		"pngOut": "`+filepath.ToSlash(out)+`"
	}`)
	if err := Run(path); err != nil {
		t.Fatal(err)
	}
	mustExist(t, out+"_0.png")
	if _, err := os.Stat(filepath.Join(dir, "volume.gif")); err == nil {
		t.Fatal("gif written although disabled")
	}
}

func TestRunMissingConfig(t *testing.T) {
	setSwitches(t, false, false, false, false)
	if err := Run(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing config accepted")
	}
}

func TestRunConfigRejectsUnknownShape(t *testing.T) {
	setSwitches(t, false, false, false, false)
	cfg := &Config{
		Width:   4,
		Height:  4,
		Density: GridCfg{Res: [3]int{4, 4, 4}, Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		Shape:   "cube",
		Shadow:  ShadowCfg{Disabled: true},
	}
	if err := RunConfig(cfg); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRunConfigFillsDefaults(t *testing.T) {
	setSwitches(t, false, false, false, true)
	cfg := &Config{
		Width:   4,
		Height:  4,
		Density: GridCfg{Res: [3]int{4, 4, 4}, Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		Steps:   8,
	}
	if err := RunConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Shape != ShapeSphere || cfg.Light.Position == nil || cfg.Shadow.Grid.Default == nil {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
