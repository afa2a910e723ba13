package glyphraster

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphraster/text"
)

// NativeUnitToPixel is the pixel length of one font unit at ScaleFactor 1.
const NativeUnitToPixel = 1.0

// MaxCanvasSize is the largest canvas side, in pixels, a glyph may be
// rendered at.
const MaxCanvasSize = 1 << 14

// Placement maps a glyph outline from font units onto a square canvas.
// A font-unit point (x, y) lands at
//
//	((x - OriginX) * Scale + OffsetX, (y - OriginY) * Scale + OffsetY)
type Placement struct {
	// Scale is the number of pixels per font unit.
	Scale float64

	// OriginX and OriginY are the top-left corner of the glyph bounds in
	// font units.
	OriginX, OriginY float64

	// OffsetX and OffsetY position the scaled glyph inside the canvas.
	OffsetX, OffsetY float64

	// Size is the canvas width and height in pixels.
	Size int
}

// Scale returns the pixels-per-font-unit scale for a glyph with bounds.
// With Size set, the larger bounds dimension maps to Size pixels; with
// ScaleFactor set, the factor multiplies NativeUnitToPixel.
func (c RenderConfig) Scale(bounds text.Rect) float64 {
	if c.Size > 0 {
		extent := math.Max(bounds.Width(), bounds.Height())
		if extent <= 0 {
			return 0
		}
		return float64(c.Size) / extent
	}
	return c.ScaleFactor * NativeUnitToPixel
}

// Placement computes where a glyph with bounds lands on its canvas.
func (c RenderConfig) Placement(bounds text.Rect) Placement {
	return PlaceGlyph(bounds, c.Scale(bounds), c.Padding)
}

// PlaceGlyph lays out a glyph with bounds at the given scale. The canvas
// is a square whose side is the scaled larger dimension, rounded, plus
// padding on both sides. The glyph is centered on its shorter axis with
// the offset rounded to whole pixels.
//
// PlaceGlyph depends only on its arguments, so equal scales produce equal
// placements whether the scale came from a size or a scale factor.
func PlaceGlyph(bounds text.Rect, scale float64, padding int) Placement {
	w := bounds.Width() * scale
	h := bounds.Height() * scale
	side := max(int(math.Round(math.Max(w, h))), 1)
	pad := float64(padding)

	return Placement{
		Scale:   scale,
		OriginX: bounds.MinX,
		OriginY: bounds.MinY,
		OffsetX: pad + math.Round((float64(side)-w)/2),
		OffsetY: pad + math.Round((float64(side)-h)/2),
		Size:    side + 2*padding,
	}
}

// Transform returns the font-unit to canvas-pixel mapping as an affine
// transform: scale about the origin, then translate into place.
func (p Placement) Transform() text.AffineTransform {
	return text.TranslateTransform(p.OffsetX-p.OriginX*p.Scale, p.OffsetY-p.OriginY*p.Scale).
		Multiply(text.ScaleTransform(p.Scale, p.Scale))
}

// Apply maps a font-unit point onto the canvas.
func (p Placement) Apply(x, y float64) (float64, float64) {
	return p.Transform().TransformPoint(x, y)
}

// checkCanvas reports whether a glyph with bounds fits on a canvas of at
// most MaxCanvasSize pixels per side at the given scale.
func checkCanvas(bounds text.Rect, scale float64, padding int) error {
	side := math.Round(math.Max(bounds.Width(), bounds.Height())*scale) + 2*float64(padding)
	if math.IsNaN(side) || side > MaxCanvasSize {
		return fmt.Errorf("%w: %.0f px needed, limit is %d", ErrCanvasTooLarge, side, MaxCanvasSize)
	}
	return nil
}
