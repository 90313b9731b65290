// Package geom holds the plain value types shared by the placement, evasion
// and celebration packages. Coordinates are container-local unless noted.
package geom

import "math"

// Point is a 2D coordinate. For the evading control it is the top-left corner.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between p and q
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates from p to q by t
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Size is a width/height pair
type Size struct {
	W, H float64
}

// Empty reports whether the size has no area
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Bounds is the container's client rectangle as measured by the host.
// Top and Left are in host coordinates; everything else in the core is local.
type Bounds struct {
	Width, Height float64
	Top, Left     float64
}

// Empty reports whether the bounds have not been measured yet (zero area)
func (b Bounds) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Center returns the container-local center
func (b Bounds) Center() Point { return Point{b.Width / 2, b.Height / 2} }

// Rect is an axis-aligned box
type Rect struct {
	X, Y, W, H float64
}

// RectAt builds the box of a control of size s placed at p
func RectAt(p Point, s Size) Rect { return Rect{p.X, p.Y, s.W, s.H} }

// CenteredRect builds a box of size s centered on c
func CenteredRect(c Point, s Size) Rect {
	return Rect{c.X - s.W/2, c.Y - s.H/2, s.W, s.H}
}

// Right returns the x-coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the middle of the box
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Within reports whether r lies fully inside a w×h area anchored at the origin
func (r Rect) Within(w, h float64) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= w && r.Bottom() <= h
}

// Clamp restricts v to [lo, hi]. When the range is inverted lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
