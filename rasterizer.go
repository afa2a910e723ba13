package glyphraster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/glyphraster/internal/path"
	"github.com/gogpu/glyphraster/internal/raster"
	"github.com/gogpu/glyphraster/text"
)

// CoverageBitmap is a row-major grid of per-pixel coverage in [0, 1].
type CoverageBitmap struct {
	Width, Height int
	Values        []float32
}

// NewCoverageBitmap allocates an empty width x height bitmap.
func NewCoverageBitmap(width, height int) *CoverageBitmap {
	return &CoverageBitmap{
		Width:  width,
		Height: height,
		Values: make([]float32, width*height),
	}
}

// At returns the coverage of pixel (x, y), or 0 outside the bitmap.
func (b *CoverageBitmap) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Values[y*b.Width+x]
}

// Rasterize fills outline into a coverage bitmap of p.Size x p.Size pixels
// using the selected backend. Callers validate mode and rule with
// RenderConfig.Validate; an unsupported rule falls back to nonzero.
//
// Rasterize keeps no state between calls and is safe for concurrent use.
func Rasterize(outline *text.GlyphOutline, p Placement, mode RasterizerMode, rule FillRule) *CoverageBitmap {
	switch mode {
	case RasterizerVector:
		return rasterizeVector(outline, p)
	case RasterizerRasterx:
		return rasterizeRasterx(outline, p)
	default:
		return rasterizeScanline(outline, p, rule)
	}
}

// outlineSink receives an outline in canvas pixel coordinates.
// Every contour is opened by MoveTo and finished by Close.
type outlineSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubeTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// walkOutline feeds outline to sink, mapped through p. Segments before
// the first MoveTo are ignored.
func walkOutline(outline *text.GlyphOutline, p Placement, sink outlineSink) {
	m := p.Transform()
	open := false
	for _, seg := range outline.Segments {
		var pts [3][2]float64
		for i := range seg.Op.PointCount() {
			x, y := m.TransformPoint(float64(seg.Points[i].X), float64(seg.Points[i].Y))
			pts[i] = [2]float64{x, y}
		}

		if seg.Op == text.OutlineOpMoveTo {
			if open {
				sink.Close()
			}
			sink.MoveTo(pts[0][0], pts[0][1])
			open = true
			continue
		}
		if !open {
			continue
		}

		switch seg.Op {
		case text.OutlineOpLineTo:
			sink.LineTo(pts[0][0], pts[0][1])
		case text.OutlineOpQuadTo:
			sink.QuadTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1])
		case text.OutlineOpCubicTo:
			sink.CubeTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1], pts[2][0], pts[2][1])
		}
	}
	if open {
		sink.Close()
	}
}

// =============================================================================
// Scanline backend (internal/raster)
// =============================================================================

// elementSink collects path elements for the internal flattener.
type elementSink struct {
	elements []path.PathElement
}

func (s *elementSink) MoveTo(x, y float64) {
	s.elements = append(s.elements, path.MoveTo{Point: path.Point{X: x, Y: y}})
}

func (s *elementSink) LineTo(x, y float64) {
	s.elements = append(s.elements, path.LineTo{Point: path.Point{X: x, Y: y}})
}

func (s *elementSink) QuadTo(cx, cy, x, y float64) {
	s.elements = append(s.elements, path.QuadTo{
		Control: path.Point{X: cx, Y: cy},
		Point:   path.Point{X: x, Y: y},
	})
}

func (s *elementSink) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.elements = append(s.elements, path.CubicTo{
		Control1: path.Point{X: c1x, Y: c1y},
		Control2: path.Point{X: c2x, Y: c2y},
		Point:    path.Point{X: x, Y: y},
	})
}

func (s *elementSink) Close() {
	s.elements = append(s.elements, path.Close{})
}

func rasterizeScanline(outline *text.GlyphOutline, p Placement, rule FillRule) *CoverageBitmap {
	var sink elementSink
	walkOutline(outline, p, &sink)

	edges := path.CollectEdges(sink.elements, path.Tolerance)
	pathEdges := make([]raster.PathEdge, len(edges))
	for i, e := range edges {
		pathEdges[i] = raster.PathEdge{
			P0: raster.Point{X: e.P0.X, Y: e.P0.Y},
			P1: raster.Point{X: e.P1.X, Y: e.P1.Y},
		}
	}

	fillRule := raster.FillRuleNonZero
	if rule == FillRuleEvenOdd {
		fillRule = raster.FillRuleEvenOdd
	}

	r := raster.NewRasterizer(p.Size, p.Size)
	return &CoverageBitmap{
		Width:  p.Size,
		Height: p.Size,
		Values: r.Fill(pathEdges, fillRule),
	}
}

// =============================================================================
// Vector backend (golang.org/x/image/vector)
// =============================================================================

// vectorSink adapts vector.Rasterizer, which does not close contours
// on MoveTo.
type vectorSink struct {
	z *vector.Rasterizer
}

func (s vectorSink) MoveTo(x, y float64) { s.z.MoveTo(float32(x), float32(y)) }
func (s vectorSink) LineTo(x, y float64) { s.z.LineTo(float32(x), float32(y)) }

func (s vectorSink) QuadTo(cx, cy, x, y float64) {
	s.z.QuadTo(float32(cx), float32(cy), float32(x), float32(y))
}

func (s vectorSink) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.z.CubeTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
}

func (s vectorSink) Close() { s.z.ClosePath() }

func rasterizeVector(outline *text.GlyphOutline, p Placement) *CoverageBitmap {
	z := vector.NewRasterizer(p.Size, p.Size)
	walkOutline(outline, p, vectorSink{z: z})

	mask := image.NewAlpha(image.Rect(0, 0, p.Size, p.Size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return coverageFromAlpha(mask)
}

// =============================================================================
// Rasterx backend (github.com/srwiley/rasterx)
// =============================================================================

// fillerSink adapts rasterx.Filler, which takes 26.6 fixed-point input.
type fillerSink struct {
	f *rasterx.Filler
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

func (s fillerSink) MoveTo(x, y float64) { s.f.Start(toFixed(x, y)) }
func (s fillerSink) LineTo(x, y float64) { s.f.Line(toFixed(x, y)) }

func (s fillerSink) QuadTo(cx, cy, x, y float64) {
	s.f.QuadBezier(toFixed(cx, cy), toFixed(x, y))
}

func (s fillerSink) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.f.CubeBezier(toFixed(c1x, c1y), toFixed(c2x, c2y), toFixed(x, y))
}

func (s fillerSink) Close() { s.f.Stop(true) }

func rasterizeRasterx(outline *text.GlyphOutline, p Placement) *CoverageBitmap {
	mask := image.NewAlpha(image.Rect(0, 0, p.Size, p.Size))
	scanner := rasterx.NewScannerGV(p.Size, p.Size, mask, mask.Bounds())
	filler := rasterx.NewFiller(p.Size, p.Size, scanner)
	filler.SetColor(color.Opaque)

	walkOutline(outline, p, fillerSink{f: filler})
	filler.Draw()
	return coverageFromAlpha(mask)
}

// coverageFromAlpha converts an 8-bit mask to coverage values.
func coverageFromAlpha(mask *image.Alpha) *CoverageBitmap {
	b := mask.Bounds()
	cov := NewCoverageBitmap(b.Dx(), b.Dy())
	for y := range cov.Height {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+cov.Width]
		for x, a := range row {
			cov.Values[y*cov.Width+x] = float32(a) / 255
		}
	}
	return cov
}
