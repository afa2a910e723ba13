package text

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// gotextParser implements FontParser using go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte, index int) (ParsedFont, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= len(faces) {
		return nil, &FontIndexError{Index: index, NumFonts: len(faces)}
	}

	f := faces[index].Font
	return &gotextParsedFont{
		font: f,
		faces: sync.Pool{
			New: func() any {
				return font.NewFace(f)
			},
		},
	}, nil
}

// gotextParsedFont implements ParsedFont using go-text/typesetting.
//
// font.Font is safe for concurrent use but font.Face is not, so faces
// (which carry glyph caches) are pooled and each call borrows its own.
type gotextParsedFont struct {
	font  *font.Font
	faces sync.Pool
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string {
	return f.font.Describe().Family
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.font.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.font.NominalGlyph(r)
	if !ok || gid == 0 || gid > 0xFFFF {
		return 0, false
	}
	return GlyphID(gid), true
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *gotextParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	face := f.faces.Get().(*font.Face)
	data := face.GlyphData(font.GID(gid))
	f.faces.Put(face)

	src, ok := data.(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	outline := &GlyphOutline{
		Segments: make([]OutlineSegment, 0, len(src.Segments)),
		GID:      gid,
	}
	for _, seg := range src.Segments {
		var out OutlineSegment
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
		case ot.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
		case ot.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
		case ot.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
		}
		// OpenType's Y axis increases up; flip to match image space.
		for i := range out.Op.PointCount() {
			out.Points[i] = OutlinePoint{X: seg.Args[i].X, Y: -seg.Args[i].Y}
		}
		outline.Segments = append(outline.Segments, out)
	}
	outline.Bounds = outline.computeBounds()

	return outline, nil
}

// Codepoints implements ParsedFont.Codepoints.
func (f *gotextParsedFont) Codepoints() []rune {
	var runes []rune
	it := f.font.Cmap.Iter()
	for it.Next() {
		r, gid := it.Char()
		if gid == 0 || r < 0 || r > maxRune || isSurrogate(r) {
			continue
		}
		runes = append(runes, r)
	}
	// Some cmap formats can list a rune twice.
	slices.Sort(runes)
	return slices.Compact(runes)
}
