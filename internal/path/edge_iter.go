package path

// Edge represents a line segment from P0 to P1.
type Edge struct {
	P0, P1 Point
}

// CollectEdges flattens an outline into straight edges.
//
// Every contour is closed back to its own start point before the next
// MoveTo begins, so no edge ever connects two separate contours. Glyph
// outlines rarely carry an explicit Close; the implicit close at the next
// MoveTo (or at the end) covers them. Zero-length edges are dropped.
func CollectEdges(elements []PathElement, tolerance float64) []Edge {
	if tolerance <= 0 {
		tolerance = Tolerance
	}

	var (
		edges   []Edge
		current Point
		start   Point
		open    bool
	)

	lineTo := func(p Point) {
		if p != current {
			edges = append(edges, Edge{P0: current, P1: p})
		}
		current = p
	}
	closeContour := func() {
		if open {
			lineTo(start)
			open = false
		}
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			closeContour()
			start = e.Point
			current = e.Point

		case LineTo:
			open = true
			lineTo(e.Point)

		case QuadTo:
			open = true
			for _, p := range FlattenQuadratic(current, e.Control, e.Point, tolerance) {
				lineTo(p)
			}

		case CubicTo:
			open = true
			for _, p := range FlattenCubic(current, e.Control1, e.Control2, e.Point, tolerance) {
				lineTo(p)
			}

		case Close:
			closeContour()
			current = start
		}
	}
	closeContour()

	return edges
}
