package celadon

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorType distinguishes between color representations.
type ColorType uint8

const (
	// ColorDefault represents the terminal's default color (no color set).
	ColorDefault ColorType = iota
	// ColorANSI represents an ANSI 256 palette color (0-255).
	ColorANSI
	// ColorRGB represents a true color (24-bit RGB).
	ColorRGB
)

// Color represents a terminal color with support for default, ANSI 256, and true color.
// Zero value represents the terminal default color.
type Color struct {
	typ ColorType
	// For ANSI: r holds the palette index (0-255)
	// For RGB: r, g, b hold the color components
	r, g, b uint8
}

// DefaultColor returns a Color representing the terminal's default color.
func DefaultColor() Color {
	return Color{typ: ColorDefault}
}

// ANSIColor returns a Color from the ANSI 256 palette.
func ANSIColor(index uint8) Color {
	return Color{typ: ColorANSI, r: index}
}

// RGBColor returns a true color (24-bit RGB) Color.
func RGBColor(r, g, b uint8) Color {
	return Color{typ: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses "#RRGGBB" or "#RGB".
func HexColor(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) == 4 {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: invalid hex color %q", ErrValue, hex)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGBColor(r, g, b)
}

// Type returns the ColorType of this color.
func (c Color) Type() ColorType {
	return c.typ
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.typ == ColorDefault
}

// ANSI returns the ANSI palette index. It is zero for other color types.
func (c Color) ANSI() uint8 {
	if c.typ != ColorANSI {
		return 0
	}
	return c.r
}

// RGB returns the red, green, and blue components. It is zero for other
// color types.
func (c Color) RGB() (r, g, b uint8) {
	if c.typ != ColorRGB {
		return 0, 0, 0
	}
	return c.r, c.g, c.b
}

// Equal returns true if both colors are identical.
func (c Color) Equal(other Color) bool {
	return c == other
}

// Hex returns "#rrggbb" for RGB colors and "" otherwise.
func (c Color) Hex() string {
	if c.typ != ColorRGB {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.r) / 255, G: float64(c.g) / 255, B: float64(c.b) / 255}
}

// Shade lightens the color by steps when positive and darkens it when
// negative. Non-RGB colors are returned unchanged.
func (c Color) Shade(steps int) Color {
	if c.typ != ColorRGB || steps == 0 {
		return c
	}
	return fromColorful(shade(c.toColorful(), steps))
}

// Blend mixes c towards other by t in [0, 1], in Lab space. Blending with a
// non-RGB color returns c.
func (c Color) Blend(other Color, t float64) Color {
	if c.typ != ColorRGB || other.typ != ColorRGB {
		return c
	}
	return fromColorful(c.toColorful().BlendLab(other.toColorful(), t))
}

const shadeStep = 0.06

func shade(c colorful.Color, steps int) colorful.Color {
	h, chroma, l := c.Hcl()
	l = min(max(l+shadeStep*float64(steps), 0), 1)
	return colorful.Hcl(h, chroma, l).Clamped()
}

var namedColors = map[string]uint8{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"bright-black": 8, "bright-red": 9, "bright-green": 10, "bright-yellow": 11,
	"bright-blue": 12, "bright-magenta": 13, "bright-cyan": 14, "bright-white": 15,
}
