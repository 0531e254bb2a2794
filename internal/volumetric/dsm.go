package volumetric

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ComputeDSM fills g with a deep shadow map: for every voxel the
// transmittance from the voxel position to lightPosition through density.
// g.Default is the attenuation used outside the map's box (usually 1).
// Voxel (i,j,k) is sampled at g.VoxelPosition(i,j,k) = Min + (i,j,k)*size/res,
// the point where Read returns the stored value.
//
// Voxels are independent; z-slabs are built concurrently and the call returns
// only after the whole map is written.
func (g *Grid) ComputeDSM(density *Grid, kappa, stepSize float32, lightPosition mgl32.Vec3, opts ...Option) error {
	if density == nil {
		return fmt.Errorf("dsm: nil density grid: %w", ErrInvalidArgument)
	}
	if density == g {
		return fmt.Errorf("dsm: shadow map must not alias its density grid: %w", ErrInvalidArgument)
	}
	if !(kappa > 0) || !isFinite(kappa) {
		return fmt.Errorf("dsm: absorption coefficient %g must be positive: %w", kappa, ErrInvalidArgument)
	}
	if !(stepSize > 0) || !isFinite(stepSize) {
		return fmt.Errorf("dsm: step size %g must be positive: %w", stepSize, ErrInvalidArgument)
	}
	o := buildOptions(opts)
	counter := newProgressCounter(o.progress, "dsm", g.Ny*g.Nz)
	DebugLog("Computing DSM %dx%dx%d, kappa=%g, ds=%g, light=%v", g.Nx, g.Ny, g.Nz, kappa, stepSize, lightPosition)

	parallelRange(g.Nz, func(k0, k1 int) {
		for k := k0; k < k1; k++ {
			for j := 0; j < g.Ny; j++ {
				row := g.idx(0, j, k)
				for i := 0; i < g.Nx; i++ {
					g.Buf[row+i] = TransmittanceTo(g.VoxelPosition(i, j, k), lightPosition, density, stepSize, kappa)
				}
				counter.add(1)
			}
		}
	})
	return nil
}

// NewDSM allocates a shadow map with the density grid's resolution and box
// and builds it.
func NewDSM(density *Grid, kappa, stepSize float32, lightPosition mgl32.Vec3, opts ...Option) (*Grid, error) {
	if density == nil {
		return nil, fmt.Errorf("dsm: nil density grid: %w", ErrInvalidArgument)
	}
	dsm, err := NewGrid(density.Nx, density.Ny, density.Nz, density.Min, density.Max, DSMDefault)
	if err != nil {
		return nil, err
	}
	if err := dsm.ComputeDSM(density, kappa, stepSize, lightPosition, opts...); err != nil {
		return nil, err
	}
	return dsm, nil
}
