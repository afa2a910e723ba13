// Command glyphraster renders the glyphs of a font file to images, one
// file per codepoint.
//
// Usage:
//
//	glyphraster -font-file DejaVuSans.ttf -img-size 128 -color '#00FF00' \
//	    -unicode-range 0x41..0x5A -unicode-range U+0030..U+0039 -parallel
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/glyphraster"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// rangeList collects repeated -unicode-range flags.
type rangeList []string

func (r *rangeList) String() string { return strings.Join(*r, ",") }

func (r *rangeList) Set(s string) error {
	*r = append(*r, s)
	return nil
}

// options holds the parsed command line.
type options struct {
	fontFile    string
	outputDir   string
	imgSize     uint
	scaleFactor float64
	red         uint
	green       uint
	blue        uint
	color       glyphraster.Color
	rangeStart  string
	rangeEnd    string
	ranges      rangeList
	lettersOnly bool
	parallel    bool
	workers     int
	padding     int
	fillRule    string
	rasterizer  string
	parser      string
	fontIndex   int
	format      string
	verbose     bool

	set map[string]bool
}

func newFlagSet(o *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("glyphraster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.fontFile, "font-file", "", "font file to render (TTF, OTF, TTC); required")
	fs.StringVar(&o.outputDir, "output-dir", "out", "directory receiving one image per glyph")
	fs.UintVar(&o.imgSize, "img-size", glyphraster.DefaultSize, "glyph size in pixels; excludes -scale-factor")
	fs.Float64Var(&o.scaleFactor, "scale-factor", 0, "pixels per font unit; excludes -img-size")
	fs.UintVar(&o.red, "color-red", 255, "tint red channel (0-255)")
	fs.UintVar(&o.green, "color-green", 255, "tint green channel (0-255)")
	fs.UintVar(&o.blue, "color-blue", 255, "tint blue channel (0-255)")
	fs.TextVar(&o.color, "color", glyphraster.White, "tint as #RRGGBB; excludes -color-red/-green/-blue")
	fs.StringVar(&o.rangeStart, "unicode-range-start", "", "first codepoint (0x41, U+0041 or 65)")
	fs.StringVar(&o.rangeEnd, "unicode-range-end", "", "last codepoint (0x41, U+0041 or 65)")
	fs.Var(&o.ranges, "unicode-range", "codepoint range a..b; repeatable, ranges are unioned")
	fs.BoolVar(&o.lettersOnly, "letters-only", false, "render only Unicode letters and numbers")
	fs.BoolVar(&o.parallel, "parallel", false, "render glyphs on a worker pool")
	fs.IntVar(&o.workers, "workers", 0, "worker pool size; 0 uses GOMAXPROCS")
	fs.IntVar(&o.padding, "padding", 0, "transparent pixels around each glyph")
	fs.StringVar(&o.fillRule, "fill-rule", "nonzero", "fill rule: nonzero or evenodd")
	fs.StringVar(&o.rasterizer, "rasterizer", "scanline", "rasterizer: scanline, vector or rasterx")
	fs.StringVar(&o.parser, "parser", "ximage", "font parser: ximage or gotext")
	fs.IntVar(&o.fontIndex, "font-index", 0, "font index inside a collection")
	fs.StringVar(&o.format, "format", "png", "image format: png, bmp or tiff")
	fs.BoolVar(&o.verbose, "v", false, "log every glyph")

	return fs
}

// errUsage marks command line mistakes, reported with exit code 2.
var errUsage = errors.New("usage")

func run(args []string, stderr io.Writer) int {
	var o options
	fs := newFlagSet(&o, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	job, err := o.job()
	if err != nil {
		fmt.Fprintf(stderr, "glyphraster: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
			return exitUsage
		}
		return exitError
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	glyphraster.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	summary, err := glyphraster.Run(job)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitError
	}
	fmt.Fprintf(stderr, "rendered %d of %d glyphs (%d skipped) to %s\n",
		summary.Rendered, summary.Requested, summary.Skipped, job.OutputDir)
	return exitOK
}

// job converts the command line into a Job. Mutually exclusive flags
// and malformed values are usage errors.
func (o *options) job() (glyphraster.Job, error) {
	if o.fontFile == "" {
		return glyphraster.Job{}, fmt.Errorf("%w: -font-file is required", errUsage)
	}

	cfg := glyphraster.DefaultRenderConfig()
	switch {
	case o.set["img-size"] && o.set["scale-factor"]:
		return glyphraster.Job{}, fmt.Errorf("%w: -img-size and -scale-factor are mutually exclusive", errUsage)
	case o.set["scale-factor"]:
		cfg.Size = 0
		cfg.ScaleFactor = o.scaleFactor
	default:
		cfg.Size = uint32(min(o.imgSize, 1<<31))
	}

	channels := o.set["color-red"] || o.set["color-green"] || o.set["color-blue"]
	switch {
	case channels && o.set["color"]:
		return glyphraster.Job{}, fmt.Errorf("%w: -color and -color-red/-green/-blue are mutually exclusive", errUsage)
	case channels:
		tint, err := glyphraster.RGB(o.red, o.green, o.blue)
		if err != nil {
			return glyphraster.Job{}, fmt.Errorf("%w: %v", errUsage, err)
		}
		cfg.Tint = tint
	default:
		cfg.Tint = o.color
	}

	fillRule, err := glyphraster.ParseFillRule(o.fillRule)
	if err != nil {
		return glyphraster.Job{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	mode, err := glyphraster.ParseRasterizerMode(o.rasterizer)
	if err != nil {
		return glyphraster.Job{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	format, err := glyphraster.ParseImageFormat(o.format)
	if err != nil {
		return glyphraster.Job{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	cfg.FillRule = fillRule
	cfg.Rasterizer = mode
	cfg.Parallel = o.parallel
	cfg.Workers = o.workers
	cfg.Padding = o.padding

	return glyphraster.Job{
		FontFile:    o.fontFile,
		Parser:      o.parser,
		FontIndex:   o.fontIndex,
		OutputDir:   o.outputDir,
		Ranges:      o.rangeSpecs(),
		LettersOnly: o.lettersOnly,
		Config:      cfg,
		Format:      format,
	}, nil
}

// rangeSpecs merges -unicode-range-start/-end into the -unicode-range
// list. A missing end runs to U+10FFFF and a missing start begins at 0.
func (o *options) rangeSpecs() []string {
	specs := []string(o.ranges)
	if o.rangeStart == "" && o.rangeEnd == "" {
		return specs
	}

	start, end := o.rangeStart, o.rangeEnd
	if start == "" {
		start = "0"
	}
	if end == "" {
		end = fmt.Sprintf("0x%X", glyphraster.MaxCodepoint)
	}
	return append(specs, start+".."+end)
}
