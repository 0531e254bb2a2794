package volumetric

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// uniform density c over [-2,2]^3, scale 2 voxels per unit
func uniformGrid(t *testing.T, c float32) *Grid {
	t.Helper()
	g, err := NewGrid(8, 8, 8, mgl32.Vec3{-2, -2, -2}, mgl32.Vec3{2, 2, 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	g.Fill(c)
	return g
}

func TestTransmittanceEmptyField(t *testing.T) {
	g := uniformGrid(t, 0)
	if tr := TransmittanceTo(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, g, 0.1, 1); tr != 1 {
		t.Fatalf("empty field transmittance %g, want 1", tr)
	}
	if tr := TransmittanceTo(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0}, uniformGrid(t, 5), 0.1, 1); tr != 1 {
		t.Fatalf("coincident light transmittance %g, want 1", tr)
	}
	if tr := TransmittanceTo(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, nil, 0.1, 1); tr != 1 {
		t.Fatalf("nil grid transmittance %g, want 1", tr)
	}
	if tr := TransmittanceTo(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, g, 0, 1); tr != 1 {
		t.Fatalf("zero step transmittance %g, want 1", tr)
	}
}

func TestTransmittanceUniform(t *testing.T) {
	g := uniformGrid(t, 1)
	// four samples at y = -1, -0.5, 0, 0.5
	got := TransmittanceTo(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, g, 0.5, 1)
	if want := math.Exp(-2); math.Abs(float64(got)-want) > 1e-6 {
		t.Fatalf("transmittance %.9g want %.9g", got, want)
	}
	// absorption coefficient scales the exponent
	got = TransmittanceTo(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, g, 0.5, 0.5)
	if want := math.Exp(-1); math.Abs(float64(got)-want) > 1e-6 {
		t.Fatalf("transmittance %.9g want %.9g", got, want)
	}
}

func TestTransmittanceDropsPartialStep(t *testing.T) {
	g := uniformGrid(t, 1)
	// distance 2, step 0.8: two full steps, the remaining 0.4 is not integrated
	got := TransmittanceTo(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, g, 0.8, 1)
	if want := math.Exp(-1.6); math.Abs(float64(got)-want) > 1e-5 {
		t.Fatalf("transmittance %.9g want %.9g", got, want)
	}
}

func TestTransmittanceRefinementNonIncreasing(t *testing.T) {
	g := uniformGrid(t, 1)
	x, light := mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1.2, 0}
	prev := float32(1)
	for _, step := range []float32{1, 0.5, 0.25, 0.125, 0.0625} {
		tr := TransmittanceTo(x, light, g, step, 1)
		if tr <= 0 || tr > 1 {
			t.Fatalf("step %g: transmittance %g outside (0,1]", step, tr)
		}
		if tr > prev+1e-6 {
			t.Fatalf("step %g: transmittance increased %g -> %g", step, prev, tr)
		}
		prev = tr
	}
	// continuous limit exp(-2.2) is approached from above
	if prev < float32(math.Exp(-2.2))-1e-6 {
		t.Fatalf("finest transmittance %g below continuous limit %g", prev, math.Exp(-2.2))
	}
}
