package volumetric

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer ray marches a density grid with approximate single scattering
// into its own RGBA float image.
type Renderer struct {
	Width, Height int
	// LightPosition is used when no shadow map is given to Render.
	LightPosition mgl32.Vec3
	// Background is composited behind the medium using the final transmittance.
	Background Color3
	// Color is the scattering color of the medium.
	Color Color3

	density *Grid
	image   *Image
}

// NewRenderer sets up a renderer with a fixed output size that reads density
// from dataSource. The grid is not copied.
func NewRenderer(width, height int, dataSource *Grid) (*Renderer, error) {
	if dataSource == nil {
		return nil, fmt.Errorf("renderer: nil density grid: %w", ErrInvalidArgument)
	}
	img, err := NewImage(width, height)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	r := &Renderer{
		Width:         width,
		Height:        height,
		LightPosition: mgl32.Vec3{0, 1, 0},
		Background:    Black,
		Color:         White,
		density:       dataSource,
		image:         img,
	}
	DebugLog("Created renderer %dx%d over grid %dx%dx%d", width, height, dataSource.Nx, dataSource.Ny, dataSource.Nz)
	return r, nil
}

// Image exposes the output buffer. Callers must treat it as read-only; it is
// overwritten by the next Render.
func (r *Renderer) Image() *Image { return r.image }

// Render marches steps samples of length marchDistance/steps along every
// camera ray. Incident light comes from lightField when it is non-nil,
// otherwise it is ray marched toward LightPosition for every sample.
func (r *Renderer) Render(cameraPosition, cameraFocus mgl32.Vec3, marchDistance float32, steps int, lightField *Grid, opts ...Option) error {
	if !(marchDistance > 0) || !isFinite(marchDistance) {
		return fmt.Errorf("render: march distance %g must be positive: %w", marchDistance, ErrInvalidArgument)
	}
	if steps <= 0 {
		return fmt.Errorf("render: step count %d must be positive: %w", steps, ErrInvalidArgument)
	}
	o := buildOptions(opts)
	cam := NewCamera(cameraPosition, cameraFocus, r.Width, r.Height)
	ds := marchDistance / float32(steps)
	counter := newProgressCounter(o.progress, "render", r.Height)
	DebugLog("Render camera=%v focus=%v distance=%g steps=%d ds=%g dsm=%v", cameraPosition, cameraFocus, marchDistance, steps, ds, lightField != nil)

	parallelRange(r.Height, func(y0, y1 int) {
		for py := y0; py < y1; py++ {
			for px := 0; px < r.Width; px++ {
				c := r.march(cam.Position, cam.RayDirection(px, py), ds, steps, lightField)
				r.image.set(px, py, c, 1)
			}
			counter.add(1)
		}
	})
	return nil
}

// march integrates one camera ray front to back and composites the result
// over the background.
func (r *Renderer) march(origin, dir mgl32.Vec3, ds float32, steps int, lightField *Grid) Color3 {
	T := float32(1)
	var color Color3

	for s := 0; s < steps; s++ {
		pos := origin.Add(dir.Mul(float32(s) * ds))
		density := r.density.Read(pos)

		var light float32
		if lightField != nil {
			light = lightField.Read(pos)
		} else {
			light = TransmittanceTo(pos, r.LightPosition, r.density, ds, Kappa)
		}
		light = math32.Pow(light, LightExponent) * LightGain

		dT := math32.Exp(-density * ds * Kappa)
		T *= dT
		color = color.Add(r.Color.Scale((1 - dT) * T / Kappa * light))
	}

	if Debug {
		logMarch(T)
	}
	return color.Scale(1 - T).Add(r.Background.Scale(T))
}
