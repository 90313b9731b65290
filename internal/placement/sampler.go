// Package placement computes where the evading control goes next.
//
// A Sampler turns a strategy into a top-left position inside the container,
// keeping the control clear of a protected rectangle at the container's
// center. The random source is injected so callers can make it deterministic.
package placement

import (
	"math"

	"github.com/olivierh59500/inevitable-go/internal/geom"
)

// Default sampler parameters, in container units (pixels for the window host)
const (
	DefaultPadding       = 20.0
	DefaultCornerPadding = 40.0
	DefaultRepelRadius   = 200.0
	DefaultZoneWidth     = 200.0
	DefaultZoneHeight    = 100.0
	DefaultMaxRetries    = 50
)

// Source is the random source used by the sampler. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Kind selects the placement strategy
type Kind int

const (
	KindUniform Kind = iota // uniform random within the padded area
	KindEdge                // one of the four edges
	KindCorner              // one of the four corners, inset
	KindRepel               // fixed radius from center, away from a point
	KindMultiHop            // chain of uniform samples, last one wins
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	case KindRepel:
		return "repel"
	case KindMultiHop:
		return "multi-hop"
	}
	return "unknown"
}

// Strategy is a placement request. From is only read for KindRepel and Hops
// only for KindMultiHop.
type Strategy struct {
	Kind Kind
	From geom.Point
	Hops int
}

// Uniform places the control anywhere in the padded area
func Uniform() Strategy { return Strategy{Kind: KindUniform} }

// EdgeBiased pins the control to a random edge
func EdgeBiased() Strategy { return Strategy{Kind: KindEdge} }

// CornerBiased sends the control to a random corner
func CornerBiased() Strategy { return Strategy{Kind: KindCorner} }

// Repel moves the control to the far side of the center from p
func Repel(p geom.Point) Strategy { return Strategy{Kind: KindRepel, From: p} }

// MultiHop chains n uniform samples
func MultiHop(n int) Strategy { return Strategy{Kind: KindMultiHop, Hops: n} }

// Sampler produces positions for the evading control
type Sampler struct {
	Padding       float64
	CornerPadding float64
	RepelRadius   float64
	Zone          geom.Size // protected rectangle, centered in the container
	MaxRetries    int

	rng Source
}

// NewSampler creates a sampler with the default parameters
func NewSampler(rng Source) *Sampler {
	return &Sampler{
		Padding:       DefaultPadding,
		CornerPadding: DefaultCornerPadding,
		RepelRadius:   DefaultRepelRadius,
		Zone:          geom.Size{W: DefaultZoneWidth, H: DefaultZoneHeight},
		MaxRetries:    DefaultMaxRetries,
		rng:           rng,
	}
}

// ProtectedZone returns the centered rectangle the control must avoid
func (s *Sampler) ProtectedZone(b geom.Bounds) geom.Rect {
	return geom.CenteredRect(b.Center(), s.Zone)
}

// Sample returns the next top-left position for a control of the given size
func (s *Sampler) Sample(size geom.Size, b geom.Bounds, st Strategy) geom.Point {
	hops := s.SampleHops(size, b, st)
	return hops[len(hops)-1]
}

// SampleHops is Sample but also returns the intermediate hops of a multi-hop
// strategy. The final element is always the resolved position.
func (s *Sampler) SampleHops(size geom.Size, b geom.Bounds, st Strategy) []geom.Point {
	maxX := b.Width - size.W - s.Padding
	maxY := b.Height - size.H - s.Padding

	var hops []geom.Point
	var p geom.Point

	switch st.Kind {
	case KindEdge:
		p = s.edge(maxX, maxY)
	case KindCorner:
		p = s.corner(maxX, maxY)
	case KindRepel:
		p = s.repel(b, maxX, maxY, st.From)
	case KindMultiHop:
		n := st.Hops
		if n < 1 {
			n = 1
		}
		for i := 0; i < n-1; i++ {
			hops = append(hops, s.resolve(s.uniform(maxX, maxY), size, b, maxX, maxY))
		}
		p = s.uniform(maxX, maxY)
	default:
		p = s.uniform(maxX, maxY)
	}

	return append(hops, s.resolve(p, size, b, maxX, maxY))
}

// resolve clamps the candidate, then resamples uniformly until it clears the
// protected zone or the retry budget runs out.
func (s *Sampler) resolve(p geom.Point, size geom.Size, b geom.Bounds, maxX, maxY float64) geom.Point {
	p = s.clamp(p, maxX, maxY)
	zone := s.ProtectedZone(b)

	for i := 0; i < s.MaxRetries; i++ {
		if !geom.RectAt(p, size).Intersects(zone) {
			break
		}
		p = s.uniform(maxX, maxY)
	}

	return s.clamp(p, maxX, maxY)
}

func (s *Sampler) clamp(p geom.Point, maxX, maxY float64) geom.Point {
	return geom.Point{
		X: geom.Clamp(p.X, s.Padding, maxX),
		Y: geom.Clamp(p.Y, s.Padding, maxY),
	}
}

// span draws uniformly from [padding, max]
func (s *Sampler) span(max float64) float64 {
	if max <= s.Padding {
		return s.Padding
	}
	return s.Padding + s.rng.Float64()*(max-s.Padding)
}

func (s *Sampler) uniform(maxX, maxY float64) geom.Point {
	return geom.Point{X: s.span(maxX), Y: s.span(maxY)}
}

func (s *Sampler) edge(maxX, maxY float64) geom.Point {
	switch s.rng.Intn(4) {
	case 0: // top
		return geom.Point{X: s.span(maxX), Y: s.Padding}
	case 1: // right
		return geom.Point{X: maxX, Y: s.span(maxY)}
	case 2: // bottom
		return geom.Point{X: s.span(maxX), Y: maxY}
	default: // left
		return geom.Point{X: s.Padding, Y: s.span(maxY)}
	}
}

func (s *Sampler) corner(maxX, maxY float64) geom.Point {
	near := s.Padding + s.CornerPadding
	switch s.rng.Intn(4) {
	case 0:
		return geom.Point{X: near, Y: near}
	case 1:
		return geom.Point{X: maxX - s.CornerPadding, Y: near}
	case 2:
		return geom.Point{X: maxX - s.CornerPadding, Y: maxY - s.CornerPadding}
	default:
		return geom.Point{X: near, Y: maxY - s.CornerPadding}
	}
}

func (s *Sampler) repel(b geom.Bounds, maxX, maxY float64, from geom.Point) geom.Point {
	c := b.Center()
	dx := c.X - from.X
	dy := c.Y - from.Y
	dist := math.Hypot(dx, dy)

	// Pointer on the center (or garbage input): no direction to flee in
	if dist == 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return s.uniform(maxX, maxY)
	}

	return geom.Point{
		X: c.X + dx/dist*s.RepelRadius,
		Y: c.Y + dy/dist*s.RepelRadius,
	}
}
