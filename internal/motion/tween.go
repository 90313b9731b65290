package motion

import (
	"time"

	"github.com/olivierh59500/inevitable-go/internal/geom"
)

// Tween moves a point along a polyline (start, hops..., end) over a fixed
// duration. Each leg gets an equal share of the eased progress.
type Tween struct {
	path     []geom.Point
	start    time.Time
	duration time.Duration
	curve    Curve
}

// Fixed returns a tween that is already at p
func Fixed(p geom.Point) *Tween {
	return &Tween{path: []geom.Point{p}}
}

// Retarget starts a new tween from wherever the current one is at now
func (t *Tween) Retarget(now time.Time, waypoints []geom.Point, d time.Duration, c Curve) {
	from := t.At(now)
	t.path = append([]geom.Point{from}, waypoints...)
	t.start = now
	t.duration = d
	t.curve = c
}

// Done reports whether the tween has reached its final point
func (t *Tween) Done(now time.Time) bool {
	return len(t.path) < 2 || t.duration <= 0 || now.Sub(t.start) >= t.duration
}

// At returns the interpolated position at now
func (t *Tween) At(now time.Time) geom.Point {
	if len(t.path) == 0 {
		return geom.Point{}
	}
	last := t.path[len(t.path)-1]
	if t.Done(now) {
		return last
	}

	progress := t.curve.At(float64(now.Sub(t.start)) / float64(t.duration))
	legs := float64(len(t.path) - 1)
	pos := progress * legs

	// Overshooting curves extrapolate past the first or last leg
	leg := int(pos)
	if leg < 0 {
		leg = 0
	}
	if leg > len(t.path)-2 {
		leg = len(t.path) - 2
	}
	return t.path[leg].Lerp(t.path[leg+1], pos-float64(leg))
}

// Scalar eases a single value from one setting to another
type Scalar struct {
	from, to float64
	start    time.Time
	duration time.Duration
	curve    Curve
}

// NewScalar returns a scalar resting at v
func NewScalar(v float64) Scalar { return Scalar{from: v, to: v} }

// Retarget eases from the current value to v
func (s *Scalar) Retarget(now time.Time, v float64, d time.Duration, c Curve) {
	s.from = s.At(now)
	s.to = v
	s.start = now
	s.duration = d
	s.curve = c
}

// At returns the value at now
func (s Scalar) At(now time.Time) float64 {
	if s.duration <= 0 || now.Sub(s.start) >= s.duration {
		return s.to
	}
	p := s.curve.At(float64(now.Sub(s.start)) / float64(s.duration))
	return s.from + (s.to-s.from)*p
}
