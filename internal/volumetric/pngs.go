package volumetric

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// toU16 maps a linear value to [0..65535], clamping to [0,1] first and
// applying 1/gamma.
func toU16(v float32, gamma float64) uint16 {
	if !(v > 0) {
		return 0
	}
	n := float64(v)
	if n > 1 {
		n = 1
	}
	if gamma != 1 {
		n = math.Pow(n, 1.0/gamma)
	}
	return uint16(math.Round(n * 65535.0))
}

// ToNRGBA64 converts the float buffer to a 16-bit image, clamping each channel.
func (im *Image) ToNRGBA64(gamma float64) *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, im.Width, im.Height))
	const pxBytes = 8 // 4 channels * 2 bytes/channel
	for y := 0; y < im.Height; y++ {
		rowOff := y * out.Stride
		for x := 0; x < im.Width; x++ {
			base := im.idx(x, y, ChR)
			p := rowOff + x*pxBytes
			for c := 0; c < 4; c++ {
				g := gamma
				if c == ChA {
					g = 1
				}
				v := toU16(im.Pix[base+c], g)
				// NRGBA64 stores big-endian uint16 per channel: R, G, B, A.
				out.Pix[p+2*c] = uint8(v >> 8)
				out.Pix[p+2*c+1] = uint8(v)
			}
		}
	}
	return out
}

// SavePNG16 writes the image as a lossless 16-bit PNG.
func SavePNG16(img *Image, path string, gamma float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img.ToNRGBA64(gamma)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// framePath returns "<prefix>_<frame>.png" zero padded to fit frames-1.
func framePath(prefix string, frame, frames int) string {
	width := 1
	if frames > 1 {
		width = len(strconv.Itoa(frames - 1))
	}
	return fmt.Sprintf("%s_%0*d.png", prefix, width, frame)
}
