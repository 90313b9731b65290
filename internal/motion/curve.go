// Package motion evaluates transition timing and interpolates the evading
// control between placements. It only describes motion; hosts draw it.
package motion

import "math"

// Curve is a CSS-style cubic-bezier timing function with endpoints fixed at
// (0,0) and (1,1).
type Curve struct {
	X1, Y1, X2, Y2 float64
}

// Named timing functions
var (
	Linear    = Curve{0, 0, 1, 1}
	EaseOut   = Curve{0, 0, 0.58, 1}
	EaseInOut = Curve{0.42, 0, 0.58, 1}
	BackOut   = Curve{0.34, 1.56, 0.64, 1}
	BackInOut = Curve{0.68, -0.55, 0.265, 1.55}
)

// At maps linear progress t in [0,1] to eased progress. Y may overshoot
// [0,1] for the Back curves.
func (c Curve) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if c == Linear {
		return t
	}
	return bezier(c.Y1, c.Y2, c.solveX(t))
}

// solveX finds the bezier parameter whose x equals t (Newton, then bisection)
func (c Curve) solveX(x float64) float64 {
	u := x
	for i := 0; i < 8; i++ {
		dx := bezier(c.X1, c.X2, u) - x
		if math.Abs(dx) < 1e-6 {
			return u
		}
		d := bezierSlope(c.X1, c.X2, u)
		if math.Abs(d) < 1e-6 {
			break
		}
		u -= dx / d
	}

	lo, hi := 0.0, 1.0
	u = x
	for i := 0; i < 32; i++ {
		v := bezier(c.X1, c.X2, u)
		if math.Abs(v-x) < 1e-6 {
			break
		}
		if v < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func bezier(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}
