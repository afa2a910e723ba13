package glyphraster

import (
	"fmt"
	"math"
)

// DefaultSize is the glyph size used when neither Size nor ScaleFactor is
// set explicitly.
const DefaultSize = 64

// RenderConfig controls how every glyph of a run is rendered.
// A RenderConfig is immutable for the duration of a run.
type RenderConfig struct {
	// Size is the target size in pixels of the larger glyph dimension.
	// Mutually exclusive with ScaleFactor.
	Size uint32

	// ScaleFactor multiplies NativeUnitToPixel. Mutually exclusive with Size.
	ScaleFactor float64

	// Tint is the color of covered pixels.
	Tint Color

	// Parallel selects the worker pool dispatcher.
	Parallel bool

	// Workers is the pool size in parallel mode; 0 means GOMAXPROCS.
	Workers int

	// Padding adds transparent pixels on every side of the glyph.
	Padding int

	// FillRule selects the winding rule.
	FillRule FillRule

	// Rasterizer selects the rasterization backend.
	Rasterizer RasterizerMode
}

// DefaultRenderConfig returns a config rendering white glyphs at
// DefaultSize pixels with the scanline rasterizer, sequentially.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Size:       DefaultSize,
		Tint:       White,
		FillRule:   FillRuleNonZero,
		Rasterizer: RasterizerScanline,
	}
}

// Validate checks the config invariants. Errors match ErrInvalidConfig.
func (c RenderConfig) Validate() error {
	switch {
	case c.Size > 0 && c.ScaleFactor != 0:
		return fmt.Errorf("%w: size and scale factor are mutually exclusive", ErrInvalidConfig)
	case c.Size == 0 && c.ScaleFactor == 0:
		return fmt.Errorf("%w: one of size or scale factor is required", ErrInvalidConfig)
	case c.ScaleFactor < 0 || math.IsNaN(c.ScaleFactor) || math.IsInf(c.ScaleFactor, 0):
		return fmt.Errorf("%w: scale factor must be a positive number, got %v", ErrInvalidConfig, c.ScaleFactor)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidConfig, c.Padding)
	case c.Padding > MaxCanvasSize/2 || int(c.Size)+2*c.Padding > MaxCanvasSize:
		return fmt.Errorf("%w: canvas of size %d with padding %d exceeds %d px",
			ErrInvalidConfig, c.Size, c.Padding, MaxCanvasSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case !c.Rasterizer.valid():
		return fmt.Errorf("%w: unknown rasterizer %d", ErrInvalidConfig, c.Rasterizer)
	case !c.Rasterizer.SupportsFillRule(c.FillRule):
		return fmt.Errorf("%w: %s rasterizer does not support fill rule %s",
			ErrInvalidConfig, c.Rasterizer, c.FillRule)
	}
	return nil
}
