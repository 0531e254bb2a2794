package volumetric

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// normalizeOr returns a unit-length copy of v, or fallback when v is (near) zero
// or not finite.
func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if !(l > epsLen) || !isFinite(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// cellIndex splits a grid-space coordinate into its integer cell and the
// fractional weight inside that cell.
func cellIndex(x float32) (int, float32) {
	f := math32.Floor(x)
	return int(f), x - f
}
