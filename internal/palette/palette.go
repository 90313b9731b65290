// Package palette holds the colors shared by the window and terminal hosts
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	Backdrop = mustHex("#fff1f3")
	Card     = mustHex("#ffffff")
	Ink      = mustHex("#4a1d2a")
	Muted    = mustHex("#8a5a66")
	Primary  = mustHex("#e11d48")
	OnColor  = mustHex("#ffffff")
	Outline  = mustHex("#f4a3b5")
	Focus    = mustHex("#f59e0b")
)

// Emblem returns the heart color for a hue in degrees
func Emblem(hue float64) colorful.Color {
	return colorful.OkLch(0.65, 0.22, math.Mod(hue+360, 360)).Clamped()
}

// Glint returns the star color
func Glint() colorful.Color {
	return colorful.OkLch(0.85, 0.15, 60).Clamped()
}

// Over blends c over bg at the given opacity, for surfaces without alpha
func Over(c, bg colorful.Color, alpha float64) colorful.Color {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 1 {
		return c
	}
	return bg.BlendRgb(c, alpha).Clamped()
}

// Brighten scales c by f, where f < 1 darkens
func Brighten(c colorful.Color, f float64) colorful.Color {
	if f == 1 {
		return c
	}
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
}

// RGBA converts c with an alpha in [0, 1] to a premultiplied color.RGBA
func RGBA(c colorful.Color, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	c = c.Clamped()
	return color.RGBA{
		R: uint8(c.R*alpha*255 + 0.5),
		G: uint8(c.G*alpha*255 + 0.5),
		B: uint8(c.B*alpha*255 + 0.5),
		A: uint8(alpha*255 + 0.5),
	}
}

// mustHex parses a "#rrggbb" literal and panics on a malformed one
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
