package volumetric

import "github.com/chewxy/math32"

func isFinite(x float32) bool { return !math32.IsInf(x, 0) && !math32.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
