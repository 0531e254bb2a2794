package volumetric

// Renderer constants. Light exponent and gain are tone-mapping knobs,
// not physical quantities.
const (
	FieldOfViewDeg = 80
	Kappa          = 1.0 // scattering/absorption coefficient of the medium
	LightExponent  = 3.0
	LightGain      = 5.0
	ImageWidth     = 512
	ImageHeight    = 512
	GridRes        = 128
	MarchDistance  = 2.0
	MarchSteps     = 128
	DSMStepSize    = 0.025
	DSMAbsorption  = 1.0
	DSMDefault     = 1.0 // no attenuation outside the shadow box
	Frames         = 1
	GIFDelay       = 5 // 100ths of a second per frame
	Gamma          = 1.0
	PNGOut         = "pngs/frame"
	GIFOut         = "volume.gif"
	// hot-loop constants
	epsLen = 1e-12
)
