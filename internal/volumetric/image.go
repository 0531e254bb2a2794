package volumetric

import "fmt"

// Channel indices for readability.
const (
	ChR = 0
	ChG = 1
	ChB = 2
	ChA = 3
)

// Image is a dense RGBA float buffer, row-major, 4 floats per pixel.
// Values are not clamped.
type Image struct {
	Width, Height int
	Pix           []float32 // flat: (y*Width + x)*4 + c
}

// NewImage allocates a zero (transparent black) image.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size %dx%d: %w", width, height, ErrInvalidArgument)
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}, nil
}

// Flat buffer index helper (c ∈ {ChR,ChG,ChB,ChA}).
func (im *Image) idx(x, y, c int) int {
	return (y*im.Width+x)*4 + c
}

// At returns the pixel at (x, y) with its alpha.
func (im *Image) At(x, y int) (Color3, float32) {
	base := im.idx(x, y, ChR)
	return Color3{im.Pix[base], im.Pix[base+1], im.Pix[base+2]}, im.Pix[base+3]
}

func (im *Image) set(x, y int, c Color3, a float32) {
	base := im.idx(x, y, ChR)
	im.Pix[base+0] = c.R
	im.Pix[base+1] = c.G
	im.Pix[base+2] = c.B
	im.Pix[base+3] = a
}

// Clone returns a deep copy, useful when frames must outlive the renderer buffer.
func (im *Image) Clone() *Image {
	out := &Image{Width: im.Width, Height: im.Height, Pix: make([]float32, len(im.Pix))}
	copy(out.Pix, im.Pix)
	return out
}
