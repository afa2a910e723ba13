package glyphraster

import (
	"bytes"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphraster/text"
)

// fakeFont is an in-memory text.ParsedFont.
type fakeFont struct {
	glyphs map[rune]*text.GlyphOutline
}

func newFakeFont(glyphs map[rune]*text.GlyphOutline) *fakeFont {
	return &fakeFont{glyphs: glyphs}
}

func (f *fakeFont) Name() string    { return "Fake" }
func (f *fakeFont) UnitsPerEm() int { return 1000 }

func (f *fakeFont) GlyphIndex(r rune) (text.GlyphID, bool) {
	if _, ok := f.glyphs[r]; !ok {
		return 0, false
	}
	return text.GlyphID(r), true
}

func (f *fakeFont) GlyphOutline(gid text.GlyphID) (*text.GlyphOutline, error) {
	o, ok := f.glyphs[rune(gid)]
	if !ok {
		return nil, text.ErrNoOutline
	}
	return o, nil
}

func (f *fakeFont) Codepoints() []rune {
	runes := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// contour appends a closed polygon to segments, in font units (Y down).
func contour(segments []text.OutlineSegment, pts ...[2]float32) []text.OutlineSegment {
	for i, p := range pts {
		op := text.OutlineOpLineTo
		if i == 0 {
			op = text.OutlineOpMoveTo
		}
		segments = append(segments, text.OutlineSegment{
			Op:     op,
			Points: [3]text.OutlinePoint{{X: p[0], Y: p[1]}},
		})
	}
	return segments
}

// squareRing returns a 1000x1000 unit square sitting on the baseline
// with a 500x500 hole cut by an opposite-direction inner contour.
// At size 64 the hole spans pixels 16..48.
func squareRing() *text.GlyphOutline {
	var segs []text.OutlineSegment
	segs = contour(segs, [2]float32{0, -1000}, [2]float32{1000, -1000}, [2]float32{1000, 0}, [2]float32{0, 0})
	segs = contour(segs, [2]float32{250, -750}, [2]float32{250, -250}, [2]float32{750, -250}, [2]float32{750, -750})
	return &text.GlyphOutline{
		Segments: segs,
		Bounds:   text.Rect{MinX: 0, MinY: -1000, MaxX: 1000, MaxY: 0},
	}
}

// nestedSquares returns two same-direction squares, the inner one
// spanning the middle half.
func nestedSquares() *text.GlyphOutline {
	var segs []text.OutlineSegment
	segs = contour(segs, [2]float32{0, -1000}, [2]float32{1000, -1000}, [2]float32{1000, 0}, [2]float32{0, 0})
	segs = contour(segs, [2]float32{250, -750}, [2]float32{750, -750}, [2]float32{750, -250}, [2]float32{250, -250})
	return &text.GlyphOutline{
		Segments: segs,
		Bounds:   text.Rect{MinX: 0, MinY: -1000, MaxX: 1000, MaxY: 0},
	}
}

// emptyOutline is a glyph without contours, like a space.
func emptyOutline() *text.GlyphOutline {
	return &text.GlyphOutline{}
}

// goRegular returns the Go Regular font parsed with the default backend.
func goRegular(t testing.TB) text.ParsedFont {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource failed: %v", err)
	}
	return source.Parsed()
}

// syncBuffer is a bytes.Buffer safe for concurrent writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureLogs installs a debug-level text logger for the duration of t.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	buf := &syncBuffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return buf
}
