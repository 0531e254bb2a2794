package volumetric

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DensityFunc returns a density for a voxel given its normalized lattice
// coordinate in [-1,1]^3 (first voxel -1, last voxel +1 on each axis).
type DensityFunc func(p mgl32.Vec3) float32

// Populate writes fn into every voxel of g. Z-slabs are filled concurrently.
func Populate(g *Grid, fn DensityFunc) {
	sx := 2 / float32(g.Nx-1)
	sy := 2 / float32(g.Ny-1)
	sz := 2 / float32(g.Nz-1)
	parallelRange(g.Nz, func(k0, k1 int) {
		for k := k0; k < k1; k++ {
			for j := 0; j < g.Ny; j++ {
				row := g.idx(0, j, k)
				for i := 0; i < g.Nx; i++ {
					p := mgl32.Vec3{float32(i)*sx - 1, float32(j)*sy - 1, float32(k)*sz - 1}
					g.Buf[row+i] = fn(p)
				}
			}
		}
	})
}

// SphereDensity is a solid unit sphere of density 1 with a very dense inner
// sphere of radius 0.5.
func SphereDensity(p mgl32.Vec3) float32 {
	d2 := p.Dot(p)
	if d2 < 0.25 {
		return 20
	}
	if d2 < 1 {
		return 1
	}
	return 0
}

// MovingBallDensity is the unit sphere with a small dense ball oscillating
// along Y; t in [0,1] is the animation phase.
func MovingBallDensity(t float32) DensityFunc {
	center := mgl32.Vec3{0, 0.5 + 0.25*math32.Cos(t*2*math32.Pi), 0}
	return func(p mgl32.Vec3) float32 {
		if p.Sub(center).Len() < 0.15 {
			return 20
		}
		if p.Len() < 1 {
			return 1
		}
		return 0
	}
}

// Shape names accepted by the scene config.
const (
	ShapeSphere     = "sphere"
	ShapeMovingBall = "movingBall"
	ShapeEmpty      = "empty"
)

// shapeFor returns the density of the named shape for a frame phase t.
func shapeFor(name string, t float32) (DensityFunc, bool) {
	switch name {
	case ShapeSphere:
		return SphereDensity, true
	case ShapeMovingBall:
		return MovingBallDensity(t), true
	case ShapeEmpty:
		return func(mgl32.Vec3) float32 { return 0 }, true
	}
	return nil, false
}
