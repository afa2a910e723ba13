// Package raster provides scanline coverage rasterization for glyph outlines.
package raster

import "math"

// SupersampleShift controls vertical supersampling: 2 means 4 sub-scanlines.
const SupersampleShift = 2

// SupersampleScale is the number of sub-scanlines per pixel row.
const SupersampleScale = 1 << SupersampleShift

// FillRule specifies how to determine which areas are inside an outline.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the fill rule name.
func (r FillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "nonzero"
	case FillRuleEvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// Rasterizer accumulates per-pixel coverage for a fixed-size canvas.
//
// Each pixel row is sampled with SupersampleScale sub-scanlines placed at
// sub-row centers. Along a sub-scanline, spans contribute their exact
// horizontal overlap with every pixel, so coverage is fractional in both
// directions.
//
// A Rasterizer is not safe for concurrent use; create one per goroutine.
type Rasterizer struct {
	width  int
	height int
	aet    *ActiveEdgeTable
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
	}
}

// Width returns the canvas width in pixels.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the canvas height in pixels.
func (r *Rasterizer) Height() int { return r.height }

// PathEdge represents an edge produced by outline flattening.
type PathEdge struct {
	P0, P1 Point
}

// Fill rasterizes closed edges into a row-major coverage buffer of
// width*height values in [0, 1].
func (r *Rasterizer) Fill(pathEdges []PathEdge, fillRule FillRule) []float32 {
	coverage := make([]float32, r.width*r.height)
	if r.width <= 0 || r.height <= 0 {
		return coverage
	}

	edges := make([]Edge, 0, len(pathEdges))
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, pe := range pathEdges {
		e := NewEdge(pe.P0, pe.P1)
		if e.IsHorizontal() {
			continue
		}
		edges = append(edges, e)
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}
	if len(edges) == 0 {
		return coverage
	}

	yStart := max(int(math.Floor(yMin)), 0)
	yEnd := min(int(math.Ceil(yMax)), r.height)

	row := make([]float64, r.width)
	const weight = 1.0 / SupersampleScale

	for y := yStart; y < yEnd; y++ {
		clear(row)
		touched := false

		for sub := range SupersampleScale {
			scanY := float64(y) + (float64(sub)+0.5)/SupersampleScale
			if r.scanline(row, edges, scanY, fillRule, weight) {
				touched = true
			}
		}

		if !touched {
			continue
		}
		out := coverage[y*r.width : (y+1)*r.width]
		for x, c := range row {
			switch {
			case c <= 0:
				out[x] = 0
			case c >= 1:
				out[x] = 1
			default:
				out[x] = float32(c)
			}
		}
	}

	return coverage
}

// scanline accumulates the spans of one sub-scanline into row.
func (r *Rasterizer) scanline(row []float64, edges []Edge, y float64, fillRule FillRule, weight float64) bool {
	r.aet.Clear()
	for i := range edges {
		if edges[i].Crosses(y) {
			r.aet.AddAtY(&edges[i], y)
		}
	}

	active := r.aet.Edges()
	if len(active) < 2 {
		return false
	}
	r.aet.Sort()

	if fillRule == FillRuleEvenOdd {
		for i := 0; i+1 < len(active); i += 2 {
			accumulateSpan(row, active[i].x, active[i+1].x, weight)
		}
		return true
	}

	winding := 0
	var x1 float64
	for _, edge := range active {
		if winding == 0 {
			x1 = edge.x
		}
		winding += edge.dir
		if winding == 0 {
			accumulateSpan(row, x1, edge.x, weight)
		}
	}
	return true
}

// accumulateSpan adds weight times the horizontal overlap of [x1, x2)
// with each pixel of row.
func accumulateSpan(row []float64, x1, x2, weight float64) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	width := float64(len(row))
	x1 = math.Max(x1, 0)
	x2 = math.Min(x2, width)
	if x1 >= x2 {
		return
	}

	first := int(x1)
	last := min(int(math.Ceil(x2))-1, len(row)-1)

	if first == last {
		row[first] += (x2 - x1) * weight
		return
	}

	row[first] += (float64(first+1) - x1) * weight
	for x := first + 1; x < last; x++ {
		row[x] += weight
	}
	row[last] += (x2 - float64(last)) * weight
}
