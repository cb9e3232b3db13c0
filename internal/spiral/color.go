package spiral

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit colour as chosen on a colour control.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{}
	White = RGB{R: 255, G: 255, B: 255}
)

// ParseRGB parses "#RRGGBB" (or the short "#RGB" form).
func ParseRGB(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustRGB is ParseRGB for literals; it panics on malformed input.
func MustRGB(s string) RGB {
	c, err := ParseRGB(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// NRGBA returns the colour with alpha in [0,1] applied.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// Floats returns the channels scaled to [0,1].
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Lerp blends linearly in RGB space; t=0 is c, t=1 is to.
func (c RGB) Lerp(to RGB, t float64) RGB {
	r, g, b := c.colorful().BlendRgb(to.colorful(), clamp01(t)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) colorful() colorful.Color {
	r, g, b := c.Floats()
	return colorful.Color{R: r, G: g, B: b}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
