package text

import (
	"fmt"
	"sort"
	"sync"
)

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (golang.org/x/image/font/opentype or go-text/typesetting).
type FontParser interface {
	// Parse parses font data (TTF, OTF or a TTC/OTC collection) and
	// returns the font at index. Index is ignored for single fonts
	// except that it must be 0.
	Parse(data []byte, index int) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
//
// Implementations are read-only after parsing and must be safe for
// concurrent use: glyph lookups from several goroutines never mutate
// shared state.
type ParsedFont interface {
	// Name returns the font family name.
	// Returns empty string if not available.
	Name() string

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune and whether the
	// font maps the rune at all.
	GlyphIndex(r rune) (GlyphID, bool)

	// GlyphOutline returns the outline of a glyph in font units with
	// the Y axis pointing down. Glyphs without contours (spaces) return
	// an empty outline and no error.
	GlyphOutline(gid GlyphID) (*GlyphOutline, error)

	// Codepoints returns every rune the font maps, in ascending order.
	Codepoints() []rune
}

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		"ximage": &ximageParser{},
		"gotext": &gotextParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	parserRegistry[name] = parser
	parserMu.Unlock()
}

// Parsers returns the names of all registered parsers, sorted.
func Parsers() []string {
	parserMu.RLock()
	defer parserMu.RUnlock()

	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getParser returns the parser by name. An empty name selects the default.
func getParser(name string) (FontParser, error) {
	if name == "" {
		name = defaultParserName
	}

	parserMu.RLock()
	p, ok := parserRegistry[name]
	parserMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}
	return p, nil
}

// LoadOutline resolves r through the font's character map and returns
// the glyph outline. Unmapped runes yield a *GlyphNotFoundError.
func LoadOutline(font ParsedFont, r rune) (*GlyphOutline, error) {
	gid, ok := font.GlyphIndex(r)
	if !ok {
		return nil, &GlyphNotFoundError{Rune: r}
	}
	return font.GlyphOutline(gid)
}

// maxRune is the largest Unicode scalar value.
const maxRune = 0x10FFFF

// isSurrogate reports whether r is a UTF-16 surrogate, which never
// appears in a character map as a character of its own.
func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}
