// Package glyphraster renders the glyphs of a font file to raster images.
//
// # Overview
//
// glyphraster resolves a set of Unicode codepoints, looks up each glyph
// outline in a font, rasterizes it to an anti-aliased coverage bitmap,
// tints it with a single color and writes one image file per glyph.
//
// # Quick Start
//
//	import "github.com/gogpu/glyphraster"
//
//	cfg := glyphraster.DefaultRenderConfig()
//	cfg.Size = 128
//	cfg.Tint = glyphraster.Color{R: 0, G: 255, B: 0}
//
//	summary, err := glyphraster.Run(glyphraster.Job{
//	    FontFile:  "DejaVuSans.ttf",
//	    OutputDir: "out",
//	    Ranges:    []string{"0x41..0x5A"},
//	    Config:    cfg,
//	})
//
// # Pipeline
//
// The pipeline is organized into:
//   - Range Resolver: ParseRange, ResolveRanges, CodepointSet
//   - Font Handle: the text sub-package (x/image and go-text backends)
//   - Rasterizer: Rasterize with scanline, vector and rasterx backends
//   - Colorizer: Colorize
//   - Dispatcher: SequentialDispatcher, ParallelDispatcher
//   - Image Writer: FileWriter (PNG, BMP, TIFF)
//
// # Coordinate System
//
// Uses standard image coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Glyph outlines are converted from font units (Y up) to this space by
// the text package, so every rasterizer backend sees the same geometry.
//
// # Ordering
//
// Dispatchers always yield glyphs in ascending codepoint order. The
// sequential and parallel strategies produce identical output for the
// same input and configuration.
package glyphraster
