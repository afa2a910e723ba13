package glyphraster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB tint.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
)

// RGB creates a color from numeric channels in [0, 255].
// It fails with ErrInvalidColor when a channel is out of range.
func RGB(r, g, b uint) (Color, error) {
	if r > 255 || g > 255 || b > 255 {
		return Color{}, fmt.Errorf("%w: channels (%d, %d, %d) must be in [0, 255]", ErrInvalidColor, r, g, b)
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// ParseHex creates a color from a hex string.
// Supports formats: "#RRGGBB", "#RGB", with or without the leading '#'.
// The result equals the color built from the same numeric channels.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	var r, g, b uint64
	var err error
	switch len(s) {
	case 3: // RGB
		if r, g, b, err = parseChannels(s[0:1], s[1:2], s[2:3]); err == nil {
			r, g, b = r*17, g*17, b*17
		}
	case 6: // RRGGBB
		r, g, b, err = parseChannels(s[0:2], s[2:4], s[4:6])
	default:
		err = fmt.Errorf("want 3 or 6 hex digits, got %d", len(s))
	}
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, hex, err)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

func parseChannels(rs, gs, bs string) (r, g, b uint64, err error) {
	if r, err = strconv.ParseUint(rs, 16, 8); err != nil {
		return
	}
	if g, err = strconv.ParseUint(gs, 16, 8); err != nil {
		return
	}
	b, err = strconv.ParseUint(bs, 16, 8)
	return
}

// NRGBA returns the tint as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String returns the color in "#RRGGBB" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseHex.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
