package placement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivierh59500/inevitable-go/internal/geom"
)

// scripted replays fixed values and counts draws
type scripted struct {
	floats []float64
	ints   []int
	fCalls int
	iCalls int
}

func (s *scripted) Float64() float64 {
	v := s.floats[s.fCalls%len(s.floats)]
	s.fCalls++
	return v
}

func (s *scripted) Intn(n int) int {
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[s.iCalls%len(s.ints)] % n
	}
	s.iCalls++
	return v
}

var (
	stage  = geom.Bounds{Width: 800, Height: 600}
	button = geom.Size{W: 160, H: 64}
)

func TestSampleStaysInPaddedArea(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(7)))
	maxX := stage.Width - button.W - s.Padding
	maxY := stage.Height - button.H - s.Padding

	strategies := []Strategy{Uniform(), EdgeBiased(), CornerBiased(), Repel(geom.Point{X: 10, Y: 10}), MultiHop(3)}
	for _, st := range strategies {
		for i := 0; i < 500; i++ {
			p := s.Sample(button, stage, st)
			if p.X < s.Padding || p.X > maxX || p.Y < s.Padding || p.Y > maxY {
				t.Fatalf("%s: position %+v outside [%v,%v]x[%v,%v]", st.Kind, p, s.Padding, maxX, s.Padding, maxY)
			}
		}
	}
}

func TestSampleAvoidsProtectedZone(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := NewSampler(rand.New(rand.NewSource(seed)))
		zone := s.ProtectedZone(stage)
		strategies := []Strategy{
			Uniform(), EdgeBiased(), CornerBiased(), MultiHop(2),
			Repel(geom.Point{X: 400, Y: 290}), Repel(geom.Point{X: 0, Y: 600}),
		}
		for _, st := range strategies {
			for i := 0; i < 200; i++ {
				p := s.Sample(button, stage, st)
				if geom.RectAt(p, button).Intersects(zone) {
					t.Fatalf("seed %d %s: %+v overlaps zone %+v", seed, st.Kind, p, zone)
				}
			}
		}
	}
}

func TestRepelAtCenterFallsBackToUniform(t *testing.T) {
	src := &scripted{floats: []float64{0.1, 0.9}}
	s := NewSampler(src)

	p := s.Sample(button, stage, Repel(stage.Center()))
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Fatalf("got NaN position %+v", p)
	}

	maxX := stage.Width - button.W - s.Padding
	maxY := stage.Height - button.H - s.Padding
	want := geom.Point{X: s.Padding + 0.1*(maxX-s.Padding), Y: s.Padding + 0.9*(maxY-s.Padding)}
	if p != want {
		t.Errorf("fallback position = %+v, want uniform draw %+v", p, want)
	}
	if src.fCalls != 2 {
		t.Errorf("expected exactly one uniform draw (2 floats), got %d", src.fCalls)
	}
}

func TestRepelMovesAwayFromPointer(t *testing.T) {
	s := NewSampler(&scripted{floats: []float64{0.5}})
	// Pointer left of center: control lands RepelRadius to the right
	p := s.Sample(button, stage, Repel(geom.Point{X: 100, Y: 300}))
	want := geom.Point{X: 400 + s.RepelRadius, Y: 300}
	if p != want {
		t.Fatalf("repel position = %+v, want %+v", p, want)
	}
}

func TestRetryLoopTerminates(t *testing.T) {
	// Every uniform draw lands on the zone
	src := &scripted{floats: []float64{0.5}}
	s := NewSampler(src)

	p := s.Sample(button, stage, Uniform())

	wantCalls := 2 + 2*s.MaxRetries
	if src.fCalls != wantCalls {
		t.Fatalf("float draws = %d, want %d", src.fCalls, wantCalls)
	}
	maxX := stage.Width - button.W - s.Padding
	maxY := stage.Height - button.H - s.Padding
	if p.X < s.Padding || p.X > maxX || p.Y < s.Padding || p.Y > maxY {
		t.Errorf("best-effort position %+v not clamped", p)
	}
	if !geom.RectAt(p, button).Intersects(s.ProtectedZone(stage)) {
		t.Errorf("scripted source should have left the control on the zone")
	}
}

func TestEdgeAndCornerPlacement(t *testing.T) {
	maxX := stage.Width - button.W - DefaultPadding
	maxY := stage.Height - button.H - DefaultPadding

	cases := []struct {
		name string
		st   Strategy
		edge int
		want func(geom.Point) bool
	}{
		{"top edge", EdgeBiased(), 0, func(p geom.Point) bool { return p.Y == DefaultPadding }},
		{"right edge", EdgeBiased(), 1, func(p geom.Point) bool { return p.X == maxX }},
		{"bottom edge", EdgeBiased(), 2, func(p geom.Point) bool { return p.Y == maxY }},
		{"left edge", EdgeBiased(), 3, func(p geom.Point) bool { return p.X == DefaultPadding }},
		{"top-left corner", CornerBiased(), 0, func(p geom.Point) bool {
			return p == geom.Point{X: DefaultPadding + DefaultCornerPadding, Y: DefaultPadding + DefaultCornerPadding}
		}},
		{"bottom-right corner", CornerBiased(), 2, func(p geom.Point) bool {
			return p == geom.Point{X: maxX - DefaultCornerPadding, Y: maxY - DefaultCornerPadding}
		}},
	}

	for _, c := range cases {
		s := NewSampler(&scripted{floats: []float64{0.05}, ints: []int{c.edge}})
		p := s.Sample(button, stage, c.st)
		if !c.want(p) {
			t.Errorf("%s: unexpected position %+v", c.name, p)
		}
	}
}

func TestMultiHopReturnsEveryHop(t *testing.T) {
	a := NewSampler(rand.New(rand.NewSource(42)))
	b := NewSampler(rand.New(rand.NewSource(42)))

	hops := a.SampleHops(button, stage, MultiHop(3))
	if len(hops) != 3 {
		t.Fatalf("hops = %d, want 3", len(hops))
	}
	if final := b.Sample(button, stage, MultiHop(3)); final != hops[2] {
		t.Errorf("Sample = %+v, want final hop %+v", final, hops[2])
	}

	if got := a.SampleHops(button, stage, MultiHop(0)); len(got) != 1 {
		t.Errorf("MultiHop(0) should behave as a single hop, got %d", len(got))
	}
}

func TestUndersizedBoundsClampToPadding(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(3)))
	tiny := geom.Bounds{Width: 100, Height: 50}

	p := s.Sample(button, tiny, Repel(geom.Point{X: 5, Y: 5}))
	if p != (geom.Point{X: s.Padding, Y: s.Padding}) {
		t.Fatalf("undersized bounds: got %+v, want padding corner", p)
	}
}
