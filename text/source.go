package text

import (
	"fmt"
	"os"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared by every worker that
// rasterizes glyphs from the same file.
//
// FontSource is immutable after creation and safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	parsed ParsedFont

	name string

	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF, OTF or a
// TTC/OTC collection). The data slice is copied internally and can be
// reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := parser.Parse(dataCopy, config.fontIndex)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		parsed: parsed,
		config: config,
	}
	s.addr = s
	s.name = extractFontName(parsed)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// ParserName returns the name of the backend that parsed the font.
func (s *FontSource) ParserName() string {
	s.copyCheck()
	if s.config.parserName == "" {
		return defaultParserName
	}
	return s.config.parserName
}

// Parsed returns the parsed font.
// Panics if s is nil (e.g. when NewFontSourceFromFile error was ignored).
func (s *FontSource) Parsed() ParsedFont {
	if s == nil {
		panic("text: FontSource is nil, check the error from NewFontSourceFromFile")
	}
	s.copyCheck()
	return s.parsed
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	return "Unknown Font"
}
