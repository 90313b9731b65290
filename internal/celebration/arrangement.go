package celebration

import "github.com/olivierh59500/inevitable-go/internal/geom"

// Shape is one element of the static arrangement
type Shape struct {
	Kind  Kind
	X, Y  float64
	Size  float64
	Alpha float64
	Hue   float64 // Emblem only
}

type slot struct {
	dx, dy, size, alpha, hue float64
}

// Offsets from the view center at Scale 1
var (
	baseEmblems = []slot{
		{0, -100, 40, 1, 350},
		{-150, 0, 30, 1, 340},
		{150, 0, 30, 1, 360},
		{-80, 120, 25, 1, 345},
		{80, 120, 25, 1, 355},
	}
	extraEmblems = []slot{
		{-200, -80, 28, 0.8, 335},
		{200, -80, 28, 0.8, 365},
		{0, 180, 32, 0.9, 355},
	}
	baseGlints = []slot{
		{-100, -150, 8, 0.8, 0},
		{100, -150, 8, 0.8, 0},
		{0, 180, 10, 0.8, 0},
	}
	extraGlints = []slot{
		{-180, 0, 7, 0.7, 0},
		{180, 0, 7, 0.7, 0},
	}
)

// Intensity gates for the extra shapes
const (
	extraEmblemIntensity = 1.5
	extraGlintIntensity  = 1.3
)

// Arrangement lays out the reduced-motion decoration around the view center.
// Emblems come first, then glints.
func Arrangement(view geom.Size, attempts int, alpha, scale float64) []Shape {
	m := Intensity(attempts)
	c := geom.Point{X: view.W / 2, Y: view.H / 2}

	var out []Shape
	add := func(kind Kind, slots []slot) {
		for _, sl := range slots {
			out = append(out, Shape{
				Kind:  kind,
				X:     c.X + sl.dx*scale,
				Y:     c.Y + sl.dy*scale,
				Size:  sl.size * scale,
				Alpha: alpha * sl.alpha,
				Hue:   sl.hue,
			})
		}
	}

	add(Emblem, baseEmblems)
	if m > extraEmblemIntensity {
		add(Emblem, extraEmblems)
	}
	add(Glint, baseGlints)
	if m > extraGlintIntensity {
		add(Glint, extraGlints)
	}
	return out
}
