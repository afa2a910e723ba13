package glyphraster

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/glyphraster/text"
)

var allRasterizers = []RasterizerMode{RasterizerScanline, RasterizerVector, RasterizerRasterx}

// ringPlacement places squareRing at 64 pixels with 4 pixels of padding,
// so the glyph spans 4..68 and its hole 20..52.
func ringPlacement() Placement {
	return RenderConfig{Size: 64, Padding: 4}.Placement(squareRing().Bounds)
}

// =============================================================================
// Backend agreement
// =============================================================================

func TestRasterize_SquareRing(t *testing.T) {
	p := ringPlacement()
	if p.Size != 72 {
		t.Fatalf("placement size = %d, want 72", p.Size)
	}

	for _, mode := range allRasterizers {
		t.Run(mode.String(), func(t *testing.T) {
			cov := Rasterize(squareRing(), p, mode, FillRuleNonZero)
			if cov.Width != 72 || cov.Height != 72 || len(cov.Values) != 72*72 {
				t.Fatalf("bitmap = %dx%d (%d values), want 72x72", cov.Width, cov.Height, len(cov.Values))
			}

			checks := []struct {
				name string
				x, y int
				want float32
			}{
				{"padding corner", 1, 1, 0},
				{"padding edge", 70, 36, 0},
				{"ring top left", 8, 8, 1},
				{"ring bottom right", 64, 64, 1},
				{"ring left middle", 12, 36, 1},
				{"hole center", 36, 36, 0},
				{"hole near edge", 22, 22, 0},
			}
			for _, c := range checks {
				if got := cov.At(c.x, c.y); math.Abs(float64(got-c.want)) > 0.02 {
					t.Errorf("%s: coverage(%d,%d) = %v, want %v", c.name, c.x, c.y, got, c.want)
				}
			}
		})
	}
}

func TestRasterize_FillRules(t *testing.T) {
	p := RenderConfig{Size: 64}.Placement(nestedSquares().Bounds)

	nonzero := Rasterize(nestedSquares(), p, RasterizerScanline, FillRuleNonZero)
	evenodd := Rasterize(nestedSquares(), p, RasterizerScanline, FillRuleEvenOdd)

	if got := nonzero.At(32, 32); got != 1 {
		t.Errorf("nonzero center = %v, want 1", got)
	}
	if got := evenodd.At(32, 32); got != 0 {
		t.Errorf("evenodd center = %v, want 0", got)
	}
	if got := evenodd.At(4, 4); got != 1 {
		t.Errorf("evenodd ring = %v, want 1", got)
	}

	for _, mode := range []RasterizerMode{RasterizerVector, RasterizerRasterx} {
		cov := Rasterize(nestedSquares(), p, mode, FillRuleNonZero)
		if got := cov.At(32, 32); got < 0.98 {
			t.Errorf("%s nonzero center = %v, want 1", mode, got)
		}
	}
}

func TestRasterize_CoverageInUnitRange(t *testing.T) {
	font := goRegular(t)
	for _, r := range "AgQ%@" {
		outline, err := text.LoadOutline(font, r)
		if err != nil {
			t.Fatalf("LoadOutline(%q) error = %v", r, err)
		}
		p := RenderConfig{Size: 32}.Placement(outline.Bounds)
		for _, mode := range allRasterizers {
			cov := Rasterize(outline, p, mode, FillRuleNonZero)
			var covered int
			for _, v := range cov.Values {
				if v < 0 || v > 1 {
					t.Fatalf("%s %q: coverage %v outside [0, 1]", mode, r, v)
				}
				if v > 0 {
					covered++
				}
			}
			if covered == 0 {
				t.Errorf("%s %q: no pixel covered", mode, r)
			}
		}
	}
}

// Backends anti-alias differently but must agree on the glyph area.
func TestRasterize_BackendsAgreeOnArea(t *testing.T) {
	font := goRegular(t)
	outline, err := text.LoadOutline(font, 'B')
	if err != nil {
		t.Fatalf("LoadOutline('B') error = %v", err)
	}
	p := RenderConfig{Size: 64}.Placement(outline.Bounds)

	area := func(cov *CoverageBitmap) float64 {
		var sum float64
		for _, v := range cov.Values {
			sum += float64(v)
		}
		return sum
	}

	ref := area(Rasterize(outline, p, RasterizerVector, FillRuleNonZero))
	for _, mode := range []RasterizerMode{RasterizerScanline, RasterizerRasterx} {
		got := area(Rasterize(outline, p, mode, FillRuleNonZero))
		if math.Abs(got-ref) > ref*0.03 {
			t.Errorf("%s area = %.1f, vector area = %.1f", mode, got, ref)
		}
	}
}

// Rendering at a size and at the scale factor that size implies produces
// identical pixels.
func TestRender_SizeMatchesScaleFactor(t *testing.T) {
	font := goRegular(t)
	outline, err := text.LoadOutline(font, 'A')
	if err != nil {
		t.Fatalf("LoadOutline('A') error = %v", err)
	}

	sized := DefaultRenderConfig()
	sized.Size = 64

	scaled := DefaultRenderConfig()
	scaled.Size = 0
	scaled.ScaleFactor = sized.Scale(outline.Bounds) / NativeUnitToPixel

	a := NewGlyphRenderer(font, sized).Render('A')
	b := NewGlyphRenderer(font, scaled).Render('A')
	if a.Absent() || b.Absent() {
		t.Fatalf("Render('A') absent: %v, %v", a.Err, b.Err)
	}
	if a.Image.Bounds() != b.Image.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Image.Bounds(), b.Image.Bounds())
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("pixels differ between size and scale factor")
	}
}

func TestRender_CanvasTooLarge(t *testing.T) {
	logs := captureLogs(t)
	font := newFakeFont(map[rune]*text.GlyphOutline{'A': squareRing()})
	cfg := DefaultRenderConfig()
	cfg.Size, cfg.ScaleFactor = 0, 3e6
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	g := NewGlyphRenderer(font, cfg).Render('A')
	if !g.Absent() || !errors.Is(g.Err, ErrCanvasTooLarge) {
		t.Fatalf("Render('A') = %+v, want absent with ErrCanvasTooLarge", g)
	}

	// The oversized glyph is skipped on pool workers too.
	cfg.Parallel, cfg.Workers = true, 2
	got := collect(NewDispatcher(cfg), CodepointSet{'A'}, NewGlyphRenderer(font, cfg).Func())
	if len(got) != 1 || !errors.Is(got[0].Err, ErrCanvasTooLarge) {
		t.Errorf("parallel dispatch = %+v, want one glyph with ErrCanvasTooLarge", got)
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("oversized glyph not logged as warning:\n%s", logs.String())
	}
}

func TestRasterize_Deterministic(t *testing.T) {
	p := ringPlacement()
	for _, mode := range allRasterizers {
		a := Rasterize(squareRing(), p, mode, FillRuleNonZero)
		b := Rasterize(squareRing(), p, mode, FillRuleNonZero)
		for i := range a.Values {
			if a.Values[i] != b.Values[i] {
				t.Fatalf("%s: value %d differs between runs", mode, i)
			}
		}
	}
}

func TestWalkOutline_IgnoresLeadingSegments(t *testing.T) {
	outline := &text.GlyphOutline{
		Segments: []text.OutlineSegment{
			{Op: text.OutlineOpLineTo, Points: [3]text.OutlinePoint{{X: 5, Y: 5}}},
			{Op: text.OutlineOpMoveTo, Points: [3]text.OutlinePoint{{X: 0, Y: 0}}},
			{Op: text.OutlineOpQuadTo, Points: [3]text.OutlinePoint{{X: 1, Y: 0}, {X: 1, Y: 1}}},
			{Op: text.OutlineOpMoveTo, Points: [3]text.OutlinePoint{{X: 2, Y: 2}}},
			{Op: text.OutlineOpCubicTo, Points: [3]text.OutlinePoint{{X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}}},
		},
	}
	identity := Placement{Scale: 1}

	var rec recordingSink
	walkOutline(outline, identity, &rec)

	want := "M0,0 Q1,0 1,1 Z M2,2 C3,2 3,3 2,3 Z "
	if got := rec.buf.String(); got != want {
		t.Errorf("walkOutline() = %q, want %q", got, want)
	}
}

type recordingSink struct {
	buf bytes.Buffer
}

func (s *recordingSink) MoveTo(x, y float64) { s.printf("M%g,%g ", x, y) }
func (s *recordingSink) LineTo(x, y float64) { s.printf("L%g,%g ", x, y) }
func (s *recordingSink) QuadTo(cx, cy, x, y float64) {
	s.printf("Q%g,%g %g,%g ", cx, cy, x, y)
}
func (s *recordingSink) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.printf("C%g,%g %g,%g %g,%g ", c1x, c1y, c2x, c2y, x, y)
}
func (s *recordingSink) Close() { s.buf.WriteString("Z ") }

func (s *recordingSink) printf(format string, args ...any) {
	fmt.Fprintf(&s.buf, format, args...)
}

func TestCoverageBitmap_At(t *testing.T) {
	cov := NewCoverageBitmap(3, 2)
	cov.Values[1*3+2] = 0.5
	if got := cov.At(2, 1); got != 0.5 {
		t.Errorf("At(2, 1) = %v, want 0.5", got)
	}
	for _, pt := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if got := cov.At(pt[0], pt[1]); got != 0 {
			t.Errorf("At(%d, %d) = %v, want 0", pt[0], pt[1], got)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	font := goRegular(b)
	for _, mode := range allRasterizers {
		cfg := DefaultRenderConfig()
		cfg.Rasterizer = mode
		r := NewGlyphRenderer(font, cfg)
		b.Run(mode.String(), func(b *testing.B) {
			for b.Loop() {
				r.Render('g')
			}
		})
	}
}
