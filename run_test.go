package glyphraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphraster/text"
)

// memWriter keeps written images in memory, failing for paths in fail.
type memWriter struct {
	images map[string]image.Image
	order  []string
	fail   map[string]bool
}

func newMemWriter(fail ...string) *memWriter {
	w := &memWriter{images: make(map[string]image.Image), fail: make(map[string]bool)}
	for _, name := range fail {
		w.fail[name] = true
	}
	return w
}

func (w *memWriter) Write(path string, img image.Image) error {
	if w.fail[filepath.Base(path)] {
		return &WriteError{Path: path, Err: errors.New("disk full")}
	}
	w.images[filepath.Base(path)] = img
	w.order = append(w.order, filepath.Base(path))
	return nil
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s) error = %v", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func greenJob(font text.ParsedFont, dir string, ranges ...string) Job {
	cfg := DefaultRenderConfig()
	cfg.Size = 64
	cfg.Tint = Color{R: 0, G: 255, B: 0}
	return Job{
		Font:      font,
		OutputDir: dir,
		Ranges:    ranges,
		Config:    cfg,
	}
}

// =============================================================================
// End-to-end scenarios
// =============================================================================

func TestRun_SingleGlyph(t *testing.T) {
	dir := t.TempDir()
	font := newFakeFont(map[rune]*text.GlyphOutline{'A': squareRing()})

	summary, err := Run(greenJob(font, dir, "0x41..0x41"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary != (Summary{Requested: 1, Rendered: 1}) {
		t.Errorf("Run() summary = %+v", summary)
	}

	if names := listDir(t, dir); !slices.Equal(names, []string{"0x0041.png"}) {
		t.Fatalf("output files = %v, want [0x0041.png]", names)
	}

	f, err := os.Open(filepath.Join(dir, "0x0041.png"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("image bounds = %v, want 64x64", b)
	}

	green := color.NRGBA{G: 255, A: 255}
	if got := color.NRGBAModel.Convert(img.At(4, 4)); got != green {
		t.Errorf("covered pixel = %v, want %v", got, green)
	}
	if got := color.NRGBAModel.Convert(img.At(32, 32)); got != (color.NRGBA{G: 255}) {
		t.Errorf("uncovered pixel = %v, want green at zero alpha", got)
	}
}

func TestRun_ReversedRange(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	font := newFakeFont(map[rune]*text.GlyphOutline{'A': squareRing()})

	_, err := Run(greenJob(font, dir, "0x110000..0x10FFFF"))
	if !errors.Is(err, ErrInvalidRangeOrder) {
		t.Fatalf("Run() error = %v, want ErrInvalidRangeOrder", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Errorf("output directory created for a failed run: %v", statErr)
	}
}

func TestRun_SkipsMissingGlyph(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()
	font := newFakeFont(map[rune]*text.GlyphOutline{
		'A': squareRing(),
		'C': nestedSquares(),
	})

	summary, err := Run(greenJob(font, dir, "0x41..0x43"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary != (Summary{Requested: 3, Rendered: 2, Skipped: 1}) {
		t.Errorf("Run() summary = %+v", summary)
	}
	if names := listDir(t, dir); !slices.Equal(names, []string{"0x0041.png", "0x0043.png"}) {
		t.Errorf("output files = %v, want [0x0041.png 0x0043.png]", names)
	}

	var warnings []string
	for line := range strings.SplitSeq(logs.String(), "\n") {
		if strings.Contains(line, "level=WARN") {
			warnings = append(warnings, line)
		}
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "U+0042") {
		t.Errorf("warnings = %q, want one for U+0042", warnings)
	}
}

// =============================================================================
// Failure handling
// =============================================================================

func TestRun_InvalidConfig(t *testing.T) {
	job := greenJob(newFakeFont(nil), t.TempDir(), "0x41")
	job.Config.ScaleFactor = 2
	if _, err := Run(job); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRun_FontLoadFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tests := []struct {
		name string
		job  Job
	}{
		{"missing file", Job{FontFile: filepath.Join(t.TempDir(), "nope.ttf")}},
		{"no file", Job{}},
		{"unknown parser", Job{FontFile: writeGoRegular(t), Parser: "freetype"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.job.OutputDir = dir
			tt.job.Config = DefaultRenderConfig()
			_, err := Run(tt.job)
			if !errors.Is(err, ErrFontLoad) {
				t.Fatalf("Run() error = %v, want ErrFontLoad", err)
			}
			var loadErr *FontLoadError
			if !errors.As(err, &loadErr) || loadErr.Path != tt.job.FontFile {
				t.Errorf("Run() error = %#v, want *FontLoadError for %q", err, tt.job.FontFile)
			}
			if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
				t.Error("output directory created before the font loaded")
			}
		})
	}
}

func TestRun_WriteFailuresContinue(t *testing.T) {
	font := newFakeFont(map[rune]*text.GlyphOutline{
		'A': squareRing(),
		'B': squareRing(),
		'C': squareRing(),
	})
	writer := newMemWriter("0x0042.png")
	job := greenJob(font, t.TempDir(), "0x41..0x43")
	job.Writer = writer

	summary, err := Run(job)
	var failures *WriteFailuresError
	if !errors.As(err, &failures) || failures.Count != 1 {
		t.Fatalf("Run() error = %v, want *WriteFailuresError{1}", err)
	}
	if !errors.Is(err, ErrImageWrite) {
		t.Errorf("Run() error = %v, want ErrImageWrite", err)
	}
	if summary != (Summary{Requested: 3, Rendered: 2, WriteFailures: 1}) {
		t.Errorf("Run() summary = %+v", summary)
	}
	if !slices.Equal(writer.order, []string{"0x0041.png", "0x0043.png"}) {
		t.Errorf("written = %v", writer.order)
	}
}

func TestRun_OutputDirNotCreatable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	font := newFakeFont(map[rune]*text.GlyphOutline{'A': squareRing()})
	_, err := Run(greenJob(font, filepath.Join(file, "out"), "0x41"))
	if !errors.Is(err, ErrImageWrite) {
		t.Errorf("Run() error = %v, want ErrImageWrite", err)
	}
}

func TestRun_EmptyOutputDirUsesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	font := newFakeFont(map[rune]*text.GlyphOutline{'A': squareRing()})

	if _, err := Run(greenJob(font, "", "0x41")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if names := listDir(t, dir); !slices.Equal(names, []string{"0x0041.png"}) {
		t.Errorf("output files = %v, want [0x0041.png]", names)
	}
}

// =============================================================================
// Codepoint selection
// =============================================================================

func TestRun_DefaultsToFontCodepoints(t *testing.T) {
	font := newFakeFont(map[rune]*text.GlyphOutline{
		'Z': squareRing(),
		'1': squareRing(),
		'!': squareRing(),
	})
	writer := newMemWriter()
	job := greenJob(font, t.TempDir())
	job.Writer = writer

	summary, err := Run(job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Rendered != 3 {
		t.Errorf("Rendered = %d, want 3", summary.Rendered)
	}
	if want := []string{"0x0021.png", "0x0031.png", "0x005A.png"}; !slices.Equal(writer.order, want) {
		t.Errorf("written = %v, want %v", writer.order, want)
	}
}

func TestRun_LettersOnly(t *testing.T) {
	font := newFakeFont(map[rune]*text.GlyphOutline{
		'a': squareRing(),
		'5': squareRing(),
		'-': squareRing(),
	})
	writer := newMemWriter()
	job := greenJob(font, t.TempDir(), "0x20..0x7E")
	job.LettersOnly = true
	job.Writer = writer

	summary, err := Run(job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// 62 letters and digits requested, 2 of them in the font.
	if summary.Requested != 62 || summary.Rendered != 2 || summary.Skipped != 60 {
		t.Errorf("Run() summary = %+v", summary)
	}
	if want := []string{"0x0035.png", "0x0061.png"}; !slices.Equal(writer.order, want) {
		t.Errorf("written = %v, want %v", writer.order, want)
	}
}

// =============================================================================
// Real font pipeline
// =============================================================================

func writeGoRegular(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRun_GoRegularFile(t *testing.T) {
	fontFile := writeGoRegular(t)

	for _, parser := range text.Parsers() {
		for _, format := range []ImageFormat{FormatPNG, FormatTIFF} {
			t.Run(fmt.Sprintf("%s/%s", parser, format), func(t *testing.T) {
				dir := t.TempDir()
				cfg := DefaultRenderConfig()
				cfg.Size = 24
				cfg.Parallel = true
				cfg.Workers = 3

				summary, err := Run(Job{
					FontFile:  fontFile,
					Parser:    parser,
					OutputDir: dir,
					Ranges:    []string{"U+0041..U+005A", "0x30-0x39", "32"},
					Config:    cfg,
					Format:    format,
				})
				if err != nil {
					t.Fatalf("Run() error = %v", err)
				}
				if summary != (Summary{Requested: 37, Rendered: 36, Skipped: 1}) {
					t.Errorf("Run() summary = %+v", summary)
				}
				names := listDir(t, dir)
				if len(names) != 36 || names[0] != "0x0030."+format.String() {
					t.Errorf("output files = %v", names)
				}
			})
		}
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	font := goRegular(t)
	render := func(parallel bool) *memWriter {
		w := newMemWriter()
		job := greenJob(font, t.TempDir(), "0x21..0x7E")
		job.Config.Parallel = parallel
		job.Writer = w
		if _, err := Run(job); err != nil {
			t.Fatalf("Run(parallel=%v) error = %v", parallel, err)
		}
		return w
	}

	seq, par := render(false), render(true)
	if !slices.Equal(seq.order, par.order) {
		t.Fatalf("write order differs:\n%v\n%v", seq.order, par.order)
	}
	for _, name := range seq.order {
		a := seq.images[name].(*image.NRGBA)
		b := par.images[name].(*image.NRGBA)
		if !slices.Equal(a.Pix, b.Pix) {
			t.Errorf("%s differs between sequential and parallel", name)
		}
	}
}
