package volumetric

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// GIFWriter accumulates frames for an animated GIF. Frames are quantized as
// they are added so the float buffers do not need to be kept.
type GIFWriter struct {
	Delay int // 100ths of a second per frame
	Gamma float64
	out   *gif.GIF
}

func NewGIFWriter(delay int, gamma float64) *GIFWriter {
	if delay <= 0 {
		delay = GIFDelay
	}
	if gamma <= 0 {
		gamma = Gamma
	}
	return &GIFWriter{Delay: delay, Gamma: gamma, out: &gif.GIF{LoopCount: 0}}
}

// AddFrame quantizes img to the Plan9 palette with Floyd–Steinberg dithering.
func (gw *GIFWriter) AddFrame(img *Image) {
	rgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		rowOff := y * rgba.Stride
		for x := 0; x < img.Width; x++ {
			base := img.idx(x, y, ChR)
			p := rowOff + x*4
			rgba.Pix[p+0] = uint8(toU16(img.Pix[base+0], gw.Gamma) >> 8)
			rgba.Pix[p+1] = uint8(toU16(img.Pix[base+1], gw.Gamma) >> 8)
			rgba.Pix[p+2] = uint8(toU16(img.Pix[base+2], gw.Gamma) >> 8)
			rgba.Pix[p+3] = 255
		}
	}
	pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

	gw.out.Image = append(gw.out.Image, pimg)
	gw.out.Delay = append(gw.out.Delay, gw.Delay)
}

// Frames returns how many frames were added.
func (gw *GIFWriter) Frames() int { return len(gw.out.Image) }

// Save encodes all frames to path.
func (gw *GIFWriter) Save(path string) error {
	if len(gw.out.Image) == 0 {
		return fmt.Errorf("gif %s: no frames: %w", path, ErrInvalidArgument)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, gw.out)
}

// SaveAnimatedGIF writes frames as one looping GIF.
// delay is in 100ths of a second (e.g., 5 => 20 fps).
func SaveAnimatedGIF(frames []*Image, path string, delay int, gamma float64) error {
	gw := NewGIFWriter(delay, gamma)
	for k, img := range frames {
		if k%imax(1, len(frames)/100) == 0 { // ~1% steps
			fmt.Printf("[GIF] %.2f%%\n", float64(k+1)*100/float64(len(frames)))
		}
		gw.AddFrame(img)
	}
	return gw.Save(path)
}
