package glyphraster

import (
	"errors"
	"os"
	"path/filepath"
	"unicode"

	"github.com/gogpu/glyphraster/text"
)

// Job describes one rendering run.
type Job struct {
	// FontFile is the path of the font to render.
	FontFile string

	// Font, when set, is used instead of loading FontFile.
	Font text.ParsedFont

	// Parser names the text backend used to parse FontFile; empty
	// selects the default.
	Parser string

	// FontIndex selects a font inside a collection file.
	FontIndex int

	// OutputDir receives one image per rendered glyph. It is created if
	// missing; empty means the current directory.
	OutputDir string

	// Ranges are range specifications accepted by ParseRange. When
	// empty, every codepoint the font maps is rendered.
	Ranges []string

	// LettersOnly keeps only Unicode letters and numbers.
	LettersOnly bool

	// Config controls rendering.
	Config RenderConfig

	// Format is the output image format.
	Format ImageFormat

	// Writer persists images; nil means FileWriter{Format: Format}.
	Writer ImageWriter
}

// Summary counts what a run did.
// Requested = Rendered + Skipped + WriteFailures.
type Summary struct {
	Requested     int
	Rendered      int
	Skipped       int
	WriteFailures int
}

// IsLetterOrDigit reports whether r is a Unicode letter or number.
func IsLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Run renders every requested glyph of a font and writes one image per
// glyph to job.OutputDir.
//
// Configuration, range and font errors are fatal and returned before any
// image is written. Missing glyphs are skipped. Write failures do not stop
// the run; they are counted and reported at the end as a
// *WriteFailuresError alongside the summary.
func Run(job Job) (Summary, error) {
	var summary Summary

	if err := job.Config.Validate(); err != nil {
		return summary, err
	}
	set, err := ResolveRanges(job.Ranges...)
	if err != nil {
		return summary, err
	}

	font, err := loadFont(job)
	if err != nil {
		return summary, err
	}
	if len(job.Ranges) == 0 {
		set = fontCodepoints(font)
	}
	if job.LettersOnly {
		set = set.Filter(IsLetterOrDigit)
	}
	summary.Requested = set.Len()

	outDir := job.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return summary, &WriteError{Path: outDir, Err: err}
	}

	writer := job.Writer
	if writer == nil {
		writer = FileWriter{Format: job.Format}
	}

	log := Logger()
	log.Info("glyphraster: rendering",
		"font", font.Name(),
		"codepoints", summary.Requested,
		"rasterizer", job.Config.Rasterizer,
		"parallel", job.Config.Parallel)

	renderer := NewGlyphRenderer(font, job.Config)
	for g := range NewDispatcher(job.Config).Dispatch(set, renderer.Func()) {
		if g.Absent() {
			summary.Skipped++
			continue
		}

		path := filepath.Join(outDir, FileName(g.Codepoint, job.Format))
		if err := writer.Write(path, g.Image); err != nil {
			summary.WriteFailures++
			log.Warn("glyphraster: image write failed", "path", path, "error", err)
			continue
		}
		summary.Rendered++
		log.Debug("glyphraster: image written", "path", path)
	}

	log.Info("glyphraster: done",
		"rendered", summary.Rendered,
		"skipped", summary.Skipped,
		"write_failures", summary.WriteFailures)

	if summary.WriteFailures > 0 {
		return summary, &WriteFailuresError{Count: summary.WriteFailures}
	}
	return summary, nil
}

// loadFont returns job.Font or parses job.FontFile.
func loadFont(job Job) (text.ParsedFont, error) {
	if job.Font != nil {
		return job.Font, nil
	}
	if job.FontFile == "" {
		return nil, &FontLoadError{Err: errors.New("no font file given")}
	}

	source, err := text.NewFontSourceFromFile(job.FontFile,
		text.WithParser(job.Parser),
		text.WithFontIndex(job.FontIndex))
	if err != nil {
		return nil, &FontLoadError{Path: job.FontFile, Err: err}
	}

	Logger().Info("glyphraster: font loaded",
		"path", job.FontFile,
		"name", source.Name(),
		"parser", source.ParserName(),
		"units_per_em", source.Parsed().UnitsPerEm())

	return source.Parsed(), nil
}

// fontCodepoints returns every codepoint the font maps.
func fontCodepoints(font text.ParsedFont) CodepointSet {
	runes := font.Codepoints()
	cps := make([]uint32, len(runes))
	for i, r := range runes {
		cps[i] = uint32(r)
	}
	return NewCodepointSet(cps)
}
