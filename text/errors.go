package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrGlyphNotFound is returned when the font maps no glyph to a rune.
	ErrGlyphNotFound = errors.New("text: glyph not found")

	// ErrNoOutline is returned for glyphs stored only as bitmaps, SVG
	// documents or color layers.
	ErrNoOutline = errors.New("text: glyph has no vector outline")

	// ErrUnknownParser is returned when no parser is registered under a name.
	ErrUnknownParser = errors.New("text: unknown font parser")
)

// GlyphNotFoundError is returned when a rune has no glyph in the font.
type GlyphNotFoundError struct {
	Rune rune
}

func (e *GlyphNotFoundError) Error() string {
	return fmt.Sprintf("text: glyph not found for U+%04X", e.Rune)
}

// Is reports whether target is ErrGlyphNotFound.
func (e *GlyphNotFoundError) Is(target error) bool {
	return target == ErrGlyphNotFound
}

// FontIndexError is returned when a collection has no font at Index.
type FontIndexError struct {
	Index    int
	NumFonts int
}

func (e *FontIndexError) Error() string {
	return fmt.Sprintf("text: font index %d out of range, collection has %d font(s)", e.Index, e.NumFonts)
}
