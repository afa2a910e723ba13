package text

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte, index int) (ParsedFont, error) {
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, &FontIndexError{Index: index, NumFonts: c.NumFonts()}
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %d: %w", index, err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt.Font is read-only once parsed; every method allocates its own
// sfnt.Buffer so concurrent calls never share scratch space.
type ximageParsedFont struct {
	font *opentype.Font
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	var buf sfnt.Buffer

	// A ppem whose 26.6 value equals unitsPerEm makes every returned
	// coordinate's raw fixed-point value equal to the font unit value.
	ppem := fixed.Int26_6(f.font.UnitsPerEm())

	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
		}
		return nil, fmt.Errorf("text: failed to load glyph %d: %w", gid, err)
	}

	outline := &GlyphOutline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		GID:      gid,
	}
	for _, seg := range segments {
		var out OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
		}
		for i := range out.Op.PointCount() {
			out.Points[i] = OutlinePoint{
				X: float32(seg.Args[i].X),
				Y: float32(seg.Args[i].Y),
			}
		}
		outline.Segments = append(outline.Segments, out)
	}
	outline.Bounds = outline.computeBounds()

	return outline, nil
}

// Codepoints implements ParsedFont.Codepoints.
// sfnt exposes no cmap iterator, so the whole Unicode range is probed.
func (f *ximageParsedFont) Codepoints() []rune {
	var (
		buf   sfnt.Buffer
		runes []rune
	)
	for r := rune(0); r <= maxRune; r++ {
		if isSurrogate(r) {
			continue
		}
		if idx, err := f.font.GlyphIndex(&buf, r); err == nil && idx != 0 {
			runes = append(runes, r)
		}
	}
	return runes
}
