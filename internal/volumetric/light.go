package volumetric

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TransmittanceTo returns the fraction of light leaving lightPosition that
// reaches x through the density field, in (0,1].
//
// The path is sampled every stepSize starting at x, floor(distance/stepSize)
// samples in total; a trailing partial step is not integrated.
func TransmittanceTo(x, lightPosition mgl32.Vec3, density *Grid, stepSize, kappa float32) float32 {
	if density == nil || !(stepSize > 0) {
		return 1
	}
	dir := lightPosition.Sub(x)
	dist := dir.Len()
	if !(dist > epsLen) || !isFinite(dist) {
		return 1
	}
	dir = dir.Mul(1 / dist)

	n := int(dist / stepSize)
	var densitySum float32
	for s := 0; s < n; s++ {
		densitySum += density.Read(x.Add(dir.Mul(float32(s) * stepSize)))
	}
	return math32.Exp(-kappa * stepSize * densitySum)
}
