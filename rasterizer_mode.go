package glyphraster

import (
	"fmt"
	"strings"
)

// RasterizerMode controls which rasterization backend turns a glyph
// outline into coverage.
//
// All backends receive identical geometry; they differ in anti-aliasing
// strategy and in the fill rules they support.
type RasterizerMode int

const (
	// RasterizerScanline uses the built-in active edge table rasterizer
	// (default). It supports both fill rules.
	RasterizerScanline RasterizerMode = iota

	// RasterizerVector uses golang.org/x/image/vector, which computes
	// exact signed-area coverage. Nonzero winding only.
	RasterizerVector

	// RasterizerRasterx uses github.com/srwiley/rasterx with its
	// ScannerGV scanner. Nonzero winding only.
	RasterizerRasterx
)

// String returns the rasterizer mode name.
func (m RasterizerMode) String() string {
	switch m {
	case RasterizerScanline:
		return "Scanline"
	case RasterizerVector:
		return "Vector"
	case RasterizerRasterx:
		return "Rasterx"
	default:
		return "Unknown"
	}
}

// SupportsFillRule reports whether the backend implements rule.
func (m RasterizerMode) SupportsFillRule(rule FillRule) bool {
	switch rule {
	case FillRuleNonZero:
		return m.valid()
	case FillRuleEvenOdd:
		return m == RasterizerScanline
	default:
		return false
	}
}

func (m RasterizerMode) valid() bool {
	return m >= RasterizerScanline && m <= RasterizerRasterx
}

// ParseRasterizerMode parses a mode name, ignoring case.
func ParseRasterizerMode(s string) (RasterizerMode, error) {
	for _, m := range []RasterizerMode{RasterizerScanline, RasterizerVector, RasterizerRasterx} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rasterizer %q", ErrInvalidConfig, s)
}

// FillRule specifies how to determine which areas are inside an outline.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the fill rule name.
func (r FillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "NonZero"
	case FillRuleEvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// ParseFillRule parses "nonzero" or "evenodd", ignoring case.
func ParseFillRule(s string) (FillRule, error) {
	for _, r := range []FillRule{FillRuleNonZero, FillRuleEvenOdd} {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fill rule %q", ErrInvalidConfig, s)
}
