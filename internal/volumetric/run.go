package volumetric

import (
	"fmt"
	"time"
)

// Run loads a scene config and renders every frame it describes.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	return RunConfig(cfg)
}

// RunConfig renders cfg.Frames frames. For every frame the density grid is
// repopulated, the shadow map (if enabled) is rebuilt from it, and the image
// is handed to the enabled encoders. Unset fields of cfg are filled with
// defaults first.
func RunConfig(cfg *Config) error {
	if err := cfg.applyDefaults(); err != nil {
		return err
	}
	density, err := cfg.Density.Build()
	if err != nil {
		return fmt.Errorf("density grid: %w", err)
	}
	renderer, err := NewRenderer(cfg.Width, cfg.Height, density)
	if err != nil {
		return err
	}
	renderer.LightPosition = *cfg.Light.Position
	renderer.Background = Color3{cfg.Background[0], cfg.Background[1], cfg.Background[2]}

	var shadow *Grid
	if UseDSM && !cfg.Shadow.Disabled {
		if shadow, err = cfg.Shadow.Grid.Build(); err != nil {
			return fmt.Errorf("shadow grid: %w", err)
		}
	}

	progress := Reporter
	if progress == nil {
		progress = &ConsoleProgress{}
	}
	var gw *GIFWriter
	if GIF {
		gw = NewGIFWriter(cfg.GIFDelay, cfg.Gamma)
	}
	if Debug {
		marchLog.reset()
	}

	for frame := 0; frame < cfg.Frames; frame++ {
		if fs, ok := progress.(frameSetter); ok {
			fs.SetFrame(frame)
		}
		t := float32(0)
		if cfg.Frames > 1 {
			t = float32(frame) / float32(cfg.Frames-1)
		}
		shape, ok := shapeFor(cfg.Shape, t)
		if !ok {
			return fmt.Errorf("unknown shape %q: %w", cfg.Shape, ErrInvalidArgument)
		}
		Populate(density, shape)

		var lightField *Grid
		if shadow != nil {
			start := time.Now()
			if err := shadow.ComputeDSM(density, cfg.Light.Absorption, cfg.Light.StepSize, *cfg.Light.Position, WithProgress(progress)); err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
			lightField = shadow
			DebugLog("DSM for frame %d computed in %s", frame, time.Since(start))
		}

		start := time.Now()
		if err := renderer.Render(cfg.Camera.Position, cfg.Camera.Focus, cfg.MarchDistance, cfg.Steps, lightField, WithProgress(progress)); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		DebugLog("Frame %d rendered in %s", frame, time.Since(start))

		if err := writeFrame(cfg, renderer.Image(), frame, gw); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if cfg.GridOut != "" {
			if err := density.SaveGrid(fmt.Sprintf("%s_density_%04d.vol.zst", cfg.GridOut, frame)); err != nil {
				return err
			}
			if shadow != nil {
				if err := shadow.SaveGrid(fmt.Sprintf("%s_shadow_%04d.vol.zst", cfg.GridOut, frame)); err != nil {
					return err
				}
			}
		}
		fmt.Printf("Finished rendering frame %d / %d.\n", frame+1, cfg.Frames)
	}

	if gw != nil {
		if err := gw.Save(cfg.GIFOut); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	}
	if Debug {
		marchStats()
	}
	return nil
}

func writeFrame(cfg *Config, img *Image, frame int, gw *GIFWriter) error {
	if PNG {
		path := framePath(cfg.PNGOut, frame, cfg.Frames)
		if err := SavePNG16(img, path, cfg.Gamma); err != nil {
			return err
		}
		DebugLog("Saved PNG: %s", path)
	}
	if gw != nil {
		gw.AddFrame(img)
	}
	if RAW && cfg.RawOut != "" {
		if err := SaveRawRGBA(img, fmt.Sprintf("%s_%04d.rgba.sz", cfg.RawOut, frame)); err != nil {
			return err
		}
	}
	return nil
}
