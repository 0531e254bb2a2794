package volumetric

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid stores a scalar field sampled on a regular lattice inside the
// axis-aligned box [Min,Max]. Queries outside the box return Default.
type Grid struct {
	Nx, Ny, Nz int
	Min, Max   mgl32.Vec3
	Default    float32
	Buf        []float32 // flat: i + j*Nx + k*Nx*Ny

	// cached mapping
	size    mgl32.Vec3 // Max - Min
	scale   mgl32.Vec3 // res / size, world -> grid space
	strideY int
	strideZ int
}

// NewGrid allocates a zero-initialized grid and precomputes the world to grid mapping.
// Every axis needs at least two samples for trilinear reconstruction.
func NewGrid(nx, ny, nz int, bmin, bmax mgl32.Vec3, def float32) (*Grid, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("grid resolution (%d, %d, %d) must be >= 2 on every axis: %w", nx, ny, nz, ErrInvalidArgument)
	}
	for a := 0; a < 3; a++ {
		if !(bmin[a] < bmax[a]) || !isFinite(bmin[a]) || !isFinite(bmax[a]) {
			return nil, fmt.Errorf("grid bounds min=%v max=%v are degenerate on axis %d: %w", bmin, bmax, a, ErrInvalidArgument)
		}
	}
	size := bmax.Sub(bmin)
	g := &Grid{
		Nx:      nx,
		Ny:      ny,
		Nz:      nz,
		Min:     bmin,
		Max:     bmax,
		Default: def,
		Buf:     make([]float32, nx*ny*nz),
		size:    size,
		scale: mgl32.Vec3{
			float32(nx) / size[0],
			float32(ny) / size[1],
			float32(nz) / size[2],
		},
		strideY: nx,
		strideZ: nx * ny,
	}
	DebugLog("Allocating grid of size %dx%dx%d (%.02f MB), bounds=%v..%v, default=%g",
		nx, ny, nz, float64(len(g.Buf)*4)/(1024*1024), bmin, bmax, def)
	return g, nil
}

// Flat buffer index helper.
func (g *Grid) idx(i, j, k int) int {
	return i + j*g.strideY + k*g.strideZ
}

func (g *Grid) inRange(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 && i < g.Nx && j < g.Ny && k < g.Nz
}

// Dimensions returns the resolution on each axis.
func (g *Grid) Dimensions() (nx, ny, nz int) { return g.Nx, g.Ny, g.Nz }

// Size returns the extent of the bounding box.
func (g *Grid) Size() mgl32.Vec3 { return g.size }

// SetVoxel stores a single voxel value.
func (g *Grid) SetVoxel(i, j, k int, value float32) error {
	if !g.inRange(i, j, k) {
		return fmt.Errorf("voxel (%d, %d, %d) outside %dx%dx%d grid: %w", i, j, k, g.Nx, g.Ny, g.Nz, ErrIndexOutOfRange)
	}
	g.Buf[g.idx(i, j, k)] = value
	return nil
}

// Voxel returns a stored voxel value.
func (g *Grid) Voxel(i, j, k int) (float32, error) {
	if !g.inRange(i, j, k) {
		return 0, fmt.Errorf("voxel (%d, %d, %d) outside %dx%dx%d grid: %w", i, j, k, g.Nx, g.Ny, g.Nz, ErrIndexOutOfRange)
	}
	return g.Buf[g.idx(i, j, k)], nil
}

// Fill sets every voxel to v.
func (g *Grid) Fill(v float32) {
	for i := range g.Buf {
		g.Buf[i] = v
	}
}

// VoxelPosition returns the world point at which Read reconstructs voxel (i,j,k) exactly.
func (g *Grid) VoxelPosition(i, j, k int) mgl32.Vec3 {
	return mgl32.Vec3{
		g.Min[0] + float32(i)/g.scale[0],
		g.Min[1] + float32(j)/g.scale[1],
		g.Min[2] + float32(k)/g.scale[2],
	}
}

// Read samples the field at a world position with trilinear interpolation.
// Points whose cell is not fully inside the lattice return Default.
func (g *Grid) Read(p mgl32.Vec3) float32 {
	i, wx := cellIndex((p[0] - g.Min[0]) * g.scale[0])
	j, wy := cellIndex((p[1] - g.Min[1]) * g.scale[1])
	k, wz := cellIndex((p[2] - g.Min[2]) * g.scale[2])

	// NaN weights come from NaN positions; treat them as outside.
	if i < 0 || j < 0 || k < 0 || i >= g.Nx-1 || j >= g.Ny-1 || k >= g.Nz-1 || wx != wx || wy != wy || wz != wz {
		return g.Default
	}

	ix, iy, iz := 1-wx, 1-wy, 1-wz
	b := g.idx(i, j, k)
	sy, sz := g.strideY, g.strideZ
	d := g.Buf

	return d[b]*ix*iy*iz +
		d[b+1]*wx*iy*iz +
		d[b+sy]*ix*wy*iz +
		d[b+sy+1]*wx*wy*iz +
		d[b+sz]*ix*iy*wz +
		d[b+sz+1]*wx*iy*wz +
		d[b+sz+sy]*ix*wy*wz +
		d[b+sz+sy+1]*wx*wy*wz
}
