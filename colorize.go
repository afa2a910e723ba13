package glyphraster

import (
	"fmt"
	"image"
	"math"
)

// Colorize tints a coverage bitmap. Every pixel gets the tint's RGB and
// an alpha of round(coverage * 255), so uncovered pixels are the tint at
// zero alpha.
//
// Colorize panics if len(cov.Values) != cov.Width*cov.Height.
func Colorize(cov *CoverageBitmap, tint Color) *image.NRGBA {
	if len(cov.Values) != cov.Width*cov.Height {
		panic(fmt.Sprintf("glyphraster: coverage has %d values for a %dx%d bitmap",
			len(cov.Values), cov.Width, cov.Height))
	}

	c := tint.NRGBA()
	img := image.NewNRGBA(image.Rect(0, 0, cov.Width, cov.Height))
	for y := range cov.Height {
		row := img.Pix[y*img.Stride : y*img.Stride+cov.Width*4]
		for x := range cov.Width {
			px := row[x*4 : x*4+4 : x*4+4]
			px[0] = c.R
			px[1] = c.G
			px[2] = c.B
			px[3] = alpha8(cov.Values[y*cov.Width+x])
		}
	}
	return img
}

// alpha8 converts coverage to an 8-bit alpha, clamping to [0, 255].
func alpha8(c float32) uint8 {
	switch {
	case c <= 0 || math.IsNaN(float64(c)):
		return 0
	case c >= 1:
		return 255
	default:
		return uint8(math.Round(float64(c) * 255))
	}
}
