package volumetric

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

type GridCfg struct {
	Res     [3]int     `json:"res"`
	Min     mgl32.Vec3 `json:"min"`
	Max     mgl32.Vec3 `json:"max"`
	Default *float32   `json:"default,omitempty"` // nil means 0, or 1 for a shadow grid
}

type CameraCfg struct {
	Position mgl32.Vec3 `json:"position"`
	Focus    mgl32.Vec3 `json:"focus"`
}

type LightCfg struct {
	Position   *mgl32.Vec3 `json:"position,omitempty"` // nil means (0,1,0)
	Absorption float32     `json:"absorption,omitempty"`
	StepSize   float32     `json:"stepSize,omitempty"`
}

type ShadowCfg struct {
	Disabled bool    `json:"disabled,omitempty"`
	Grid     GridCfg `json:"grid"` // zero res means "same as density"
}

type Config struct {
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Density       GridCfg    `json:"density"`
	Shape         string     `json:"shape"`
	Camera        CameraCfg  `json:"camera"`
	MarchDistance float32    `json:"marchDistance"`
	Steps         int        `json:"steps"`
	Light         LightCfg   `json:"light"`
	Shadow        ShadowCfg  `json:"shadow"`
	Background    [3]float32 `json:"background"`
	Frames        int        `json:"frames"`
	PNGOut        string     `json:"pngOut"`
	GIFOut        string     `json:"gifOut"`
	GIFDelay      int        `json:"gifDelay,omitempty"`
	Gamma         float64    `json:"gamma,omitempty"`
	RawOut        string     `json:"rawOut,omitempty"`  // prefix for snappy framed float dumps
	GridOut       string     `json:"gridOut,omitempty"` // prefix for zstd density/shadow dumps
}

// Build validates and allocates the grid.
func (gc GridCfg) Build() (*Grid, error) {
	var def float32
	if gc.Default != nil {
		def = *gc.Default
	}
	return NewGrid(gc.Res[0], gc.Res[1], gc.Res[2], gc.Min, gc.Max, def)
}

func float32Ptr(v float32) *float32 { return &v }

func defaultGridCfg() GridCfg {
	return GridCfg{
		Res: [3]int{GridRes, GridRes, GridRes},
		Min: mgl32.Vec3{-1, -1, -1},
		Max: mgl32.Vec3{1, 1, 1},
	}
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	DebugLog("Loaded config from %s: image=%dx%d, grid=%v, shape=%s, steps=%d, frames=%d", path, cfg.Width, cfg.Height, cfg.Density.Res, cfg.Shape, cfg.Steps, cfg.Frames)
	return &cfg, nil
}

// applyDefaults fills zero values and rejects settings that cannot render.
func (cfg *Config) applyDefaults() error {
	if cfg.Width <= 0 {
		cfg.Width = ImageWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = ImageHeight
	}
	if cfg.Density.Res == ([3]int{}) {
		def := defaultGridCfg()
		if cfg.Density.Min == (mgl32.Vec3{}) && cfg.Density.Max == (mgl32.Vec3{}) {
			cfg.Density.Min, cfg.Density.Max = def.Min, def.Max
		}
		cfg.Density.Res = def.Res
	}
	if cfg.Shape == "" {
		cfg.Shape = ShapeSphere
	}
	if _, ok := shapeFor(cfg.Shape, 0); !ok {
		return fmt.Errorf("unknown shape %q: %w", cfg.Shape, ErrInvalidArgument)
	}
	if cfg.Camera.Position == cfg.Camera.Focus {
		if cfg.Camera.Position != (mgl32.Vec3{}) {
			return fmt.Errorf("camera position equals focus %v: %w", cfg.Camera.Focus, ErrInvalidArgument)
		}
		cfg.Camera.Position = mgl32.Vec3{1, 1, 1}
	}
	if cfg.MarchDistance <= 0 {
		cfg.MarchDistance = MarchDistance
	}
	if cfg.Steps <= 0 {
		cfg.Steps = MarchSteps
	}
	if cfg.Light.Position == nil {
		cfg.Light.Position = &mgl32.Vec3{0, 1, 0}
	}
	if cfg.Light.Absorption <= 0 {
		cfg.Light.Absorption = DSMAbsorption
	}
	if cfg.Light.StepSize <= 0 {
		cfg.Light.StepSize = DSMStepSize
	}
	if cfg.Shadow.Grid.Res == ([3]int{}) {
		cfg.Shadow.Grid = cfg.Density
		cfg.Shadow.Grid.Default = nil
	}
	if cfg.Shadow.Grid.Default == nil {
		cfg.Shadow.Grid.Default = float32Ptr(DSMDefault)
	}
	if cfg.Frames <= 0 {
		cfg.Frames = Frames
	}
	if cfg.PNGOut == "" {
		cfg.PNGOut = PNGOut
	}
	if cfg.GIFOut == "" {
		cfg.GIFOut = GIFOut
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}
	return nil
}
