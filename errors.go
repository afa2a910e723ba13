package glyphraster

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphraster/text"
)

// Sentinel errors for glyphraster.
var (
	// ErrInvalidRangeFormat is returned when a range endpoint cannot be parsed.
	ErrInvalidRangeFormat = errors.New("glyphraster: invalid range format")

	// ErrInvalidRangeOrder is returned when a range starts after it ends.
	ErrInvalidRangeOrder = errors.New("glyphraster: range start is greater than range end")

	// ErrCodepointOutOfRange is returned for codepoints above U+10FFFF.
	ErrCodepointOutOfRange = errors.New("glyphraster: codepoint outside the Unicode range")

	// ErrInvalidColor is returned for malformed colors and channels above 255.
	ErrInvalidColor = errors.New("glyphraster: invalid color")

	// ErrInvalidConfig is returned by RenderConfig.Validate.
	ErrInvalidConfig = errors.New("glyphraster: invalid render config")

	// ErrFontLoad is matched by every *FontLoadError.
	ErrFontLoad = errors.New("glyphraster: failed to load font")

	// ErrGlyphNotFound marks a codepoint the font does not map.
	// It is the text package sentinel so both match with errors.Is.
	ErrGlyphNotFound = text.ErrGlyphNotFound

	// ErrEmptyGlyph marks a glyph without contours, such as a space.
	ErrEmptyGlyph = errors.New("glyphraster: glyph has no contours")

	// ErrCanvasTooLarge marks a glyph whose canvas would exceed MaxCanvasSize.
	ErrCanvasTooLarge = errors.New("glyphraster: glyph canvas too large")

	// ErrImageWrite is matched by *WriteError and *WriteFailuresError.
	ErrImageWrite = errors.New("glyphraster: failed to write image")
)

// RangeError reports a range specification that could not be resolved.
type RangeError struct {
	Input string
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *RangeError) Unwrap() error { return e.Err }

// FontLoadError reports a font that could not be read or parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("glyphraster: failed to load font: %v", e.Err)
	}
	return fmt.Sprintf("glyphraster: failed to load font %s: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFontLoad.
func (e *FontLoadError) Is(target error) bool {
	return target == ErrFontLoad
}

// WriteError reports a single image that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("glyphraster: failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is reports whether target is ErrImageWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrImageWrite
}

// WriteFailuresError is returned by Run when at least one image could not
// be written. The run still processed every codepoint.
type WriteFailuresError struct {
	Count int
}

func (e *WriteFailuresError) Error() string {
	return fmt.Sprintf("glyphraster: %d image(s) could not be written", e.Count)
}

// Is reports whether target is ErrImageWrite.
func (e *WriteFailuresError) Is(target error) bool {
	return target == ErrImageWrite
}
