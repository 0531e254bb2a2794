package volumetric

import "github.com/go-gl/mathgl/mgl32"

var (
	Debug    = false // set to true for verbose debug output
	PNG      = true  // set to true to save one 16-bit PNG per frame
	GIF      = false // set to true to save all frames as an animated GIF
	RAW      = false // set to true to dump raw float RGBA frames (snappy framed)
	UseDSM   = true  // set to false to ray march toward the light for every sample
	Workers  = 0     // number of worker goroutines, 0 means runtime.NumCPU()
	Reporter Progress
	// worldUp is the camera "up" reference, no roll is supported.
	worldUp = mgl32.Vec3{0, 1, 0}
)
