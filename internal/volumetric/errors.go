package volumetric

import "errors"

var (
	// ErrInvalidArgument reports construction-time parameters that cannot
	// describe a valid grid, image or march.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange reports a voxel or pixel index outside the resolution.
	ErrIndexOutOfRange = errors.New("index out of range")
)
