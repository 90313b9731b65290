package main

import (
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/inevitable-go/internal/geom"
)

const (
	starPoints = 5
	starInner  = 0.5
)

// Unit heart, roughly centered on the origin: from the notch between the
// lobes, one cubic down the left side to the tip and one back up the right.
var (
	heartNotch  = geom.Point{X: 0, Y: -0.1}
	heartCurves = [2][3]geom.Point{
		{{X: -0.5, Y: -0.7}, {X: -1, Y: -0.3}, {X: 0, Y: 0.4}},
		{{X: 1, Y: -0.3}, {X: 0.5, Y: -0.7}, heartNotch},
	}
)

// placer scales a unit point by size, rotates it (degrees) and moves it to
// (x, y). Beziers survive affine maps, so control points go through it too.
type placer struct {
	x, y, size, sin, cos float64
}

func newPlacer(x, y, size, rotation float64) placer {
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	return placer{x: x, y: y, size: size, sin: sin, cos: cos}
}

func (p placer) at(u geom.Point) (float32, float32) {
	px, py := u.X*p.size, u.Y*p.size
	return float32(p.x + px*p.cos - py*p.sin), float32(p.y + px*p.sin + py*p.cos)
}

func heartPath(x, y, size, rotation float64) *vector.Path {
	t := newPlacer(x, y, size, rotation)
	var path vector.Path
	path.MoveTo(t.at(heartNotch))
	for _, c := range heartCurves {
		x1, y1 := t.at(c[0])
		x2, y2 := t.at(c[1])
		x3, y3 := t.at(c[2])
		path.CubicTo(x1, y1, x2, y2, x3, y3)
	}
	path.Close()
	return &path
}

// starPath is a five-point star whose tips sit at radius size, first tip up
func starPath(x, y, size, rotation float64) *vector.Path {
	t := newPlacer(x, y, size, rotation)
	var path vector.Path
	for i := 0; i < starPoints*2; i++ {
		r := 1.0
		if i%2 == 1 {
			r = starInner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/starPoints
		px, py := t.at(geom.Point{X: r * math.Cos(a), Y: r * math.Sin(a)})
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
	return &path
}

// roundedRectPath outlines r with corners of the given radius, capped at half
// the short side
func roundedRectPath(r geom.Rect, radius float64) *vector.Path {
	rad := float32(math.Min(radius, math.Min(r.W, r.H)/2))
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.Right()), float32(r.Bottom())

	var path vector.Path
	path.MoveTo(x0+rad, y0)
	path.Arc(x1-rad, y0+rad, rad, -math.Pi/2, 0, vector.Clockwise)
	path.Arc(x1-rad, y1-rad, rad, 0, math.Pi/2, vector.Clockwise)
	path.Arc(x0+rad, y1-rad, rad, math.Pi/2, math.Pi, vector.Clockwise)
	path.Arc(x0+rad, y0+rad, rad, math.Pi, 3*math.Pi/2, vector.Clockwise)
	path.Close()
	return &path
}

// wrap breaks s into lines no wider than limit. A single word wider than limit
// gets a line of its own.
func wrap(s string, limit float64, width func(string) float64) []string {
	var lines []string
	line := ""
	for _, w := range strings.Fields(s) {
		next := w
		if line != "" {
			next = line + " " + w
		}
		if line != "" && width(next) > limit {
			lines = append(lines, line)
			next = w
		}
		line = next
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
