package volumetric

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a pinhole camera looking from Position toward a focus point with a
// fixed vertical field of view and no roll.
type Camera struct {
	Position      mgl32.Vec3
	Look          mgl32.Vec3 // unit
	Right, Up     mgl32.Vec3
	PlaneDistance float32
	Aspect        float32
	Width, Height int
}

// NewCamera derives the view basis. Right and Up are the plain cross products
// (not renormalized); when Look is parallel to the world up vector the basis
// falls back to the Z axis instead of collapsing.
func NewCamera(position, focus mgl32.Vec3, width, height int) Camera {
	look := normalizeOr(focus.Sub(position), mgl32.Vec3{0, 0, -1})
	right := look.Cross(worldUp)
	if !(right.Len() > 1e-6) {
		DebugLogOnce("Camera look direction %v is parallel to world up, using Z as reference", look)
		right = normalizeOr(look.Cross(mgl32.Vec3{0, 0, 1}), mgl32.Vec3{1, 0, 0})
	}
	up := right.Cross(look)

	fov := mgl32.DegToRad(FieldOfViewDeg)
	return Camera{
		Position:      position,
		Look:          look,
		Right:         right,
		Up:            up,
		PlaneDistance: 1 / (2 * math32.Tan(fov*0.5)),
		Aspect:        float32(width) / float32(height),
		Width:         width,
		Height:        height,
	}
}

// RayDirection returns the unit direction through the center of pixel (px, py).
// Rows increase downward.
func (c Camera) RayDirection(px, py int) mgl32.Vec3 {
	u := -0.5 + (float32(px)+0.5)/float32(c.Width)
	u *= c.Aspect
	v := 0.5 - (float32(py)+0.5)/float32(c.Height)

	d := c.Look.Mul(c.PlaneDistance).Add(c.Right.Mul(u)).Add(c.Up.Mul(v))
	return normalizeOr(d, c.Look)
}
