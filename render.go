package glyphraster

import (
	"fmt"
	"image"

	"github.com/gogpu/glyphraster/text"
)

// RenderedGlyph is the result of rendering one codepoint.
//
// A nil Image is the absent marker: the glyph was skipped and Err says
// why (ErrGlyphNotFound, ErrEmptyGlyph, ErrCanvasTooLarge, or an outline
// decoding error).
type RenderedGlyph struct {
	Codepoint uint32
	Image     *image.NRGBA
	Err       error
}

// Absent reports whether the glyph was skipped.
func (g RenderedGlyph) Absent() bool {
	return g.Image == nil
}

// RenderFunc renders a single codepoint. It must be safe to call from
// several goroutines at once.
type RenderFunc func(cp uint32) RenderedGlyph

// GlyphRenderer runs the per-codepoint pipeline: font lookup,
// rasterization and colorization.
//
// GlyphRenderer only reads the font and config, so one renderer can be
// shared by all dispatch workers.
type GlyphRenderer struct {
	font   text.ParsedFont
	config RenderConfig
}

// NewGlyphRenderer creates a renderer. The config is copied.
func NewGlyphRenderer(font text.ParsedFont, config RenderConfig) *GlyphRenderer {
	return &GlyphRenderer{font: font, config: config}
}

// Render renders cp. Per-codepoint faults are returned in
// RenderedGlyph.Err, never as a panic.
func (r *GlyphRenderer) Render(cp uint32) RenderedGlyph {
	g := RenderedGlyph{Codepoint: cp}

	outline, err := text.LoadOutline(r.font, rune(cp))
	if err != nil {
		g.Err = err
		return g
	}
	if outline.IsEmpty() {
		g.Err = fmt.Errorf("%w: U+%04X", ErrEmptyGlyph, cp)
		return g
	}

	scale := r.config.Scale(outline.Bounds)
	if err := checkCanvas(outline.Bounds, scale, r.config.Padding); err != nil {
		g.Err = fmt.Errorf("U+%04X: %w", cp, err)
		return g
	}
	p := PlaceGlyph(outline.Bounds, scale, r.config.Padding)
	cov := Rasterize(outline, p, r.config.Rasterizer, r.config.FillRule)
	g.Image = Colorize(cov, r.config.Tint)

	Logger().Debug("glyphraster: glyph rendered",
		"codepoint", fmt.Sprintf("U+%04X", cp),
		"gid", outline.GID,
		"scale", p.Scale,
		"size", p.Size)

	return g
}

// Func returns Render as a RenderFunc.
func (r *GlyphRenderer) Func() RenderFunc {
	return r.Render
}
