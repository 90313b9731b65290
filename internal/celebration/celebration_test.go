package celebration

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/geom"
)

type recorder struct {
	emblems, glints int
	maxAlpha        float64
}

func (r *recorder) Emblem(x, y, size, rotation, alpha, hue float64) {
	r.emblems++
	r.maxAlpha = math.Max(r.maxAlpha, alpha)
}

func (r *recorder) Glint(x, y, size, rotation, alpha float64) {
	r.glints++
	r.maxAlpha = math.Max(r.maxAlpha, alpha)
}

func newSystem(t *testing.T) (*System, *clock.Mock, *clock.Scheduler) {
	t.Helper()
	clk := clock.NewMock(time.Unix(100, 0))
	sched := clock.NewScheduler(clk)
	s := New(Options{Scheduler: sched, Rand: rand.New(rand.NewSource(3))})
	s.Resize(800, 600)
	return s, clk, sched
}

func TestIntensityScaling(t *testing.T) {
	tests := []struct {
		attempts     int
		m            float64
		emblem, glnt int
		er, gr       float64
	}{
		{0, 1, 90, 40, 0.45, 0.3},
		{15, 1.5, 135, 60, 0.675, 0.45},
		{30, 2, 180, 80, 0.8, 0.6},
		{45, 2.5, 225, 100, 0.8, 0.6},
		{500, 2.5, 225, 100, 0.8, 0.6},
		{-4, 1, 90, 40, 0.45, 0.3},
	}
	for _, tt := range tests {
		if m := Intensity(tt.attempts); math.Abs(m-tt.m) > 1e-9 {
			t.Errorf("Intensity(%d) = %v, want %v", tt.attempts, m, tt.m)
		}
		e, g := Caps(tt.attempts)
		if e != tt.emblem || g != tt.glnt {
			t.Errorf("Caps(%d) = %d, %d, want %d, %d", tt.attempts, e, g, tt.emblem, tt.glnt)
		}
		er, gr := SpawnRates(tt.attempts)
		if math.Abs(er-tt.er) > 1e-9 || math.Abs(gr-tt.gr) > 1e-9 {
			t.Errorf("SpawnRates(%d) = %v, %v, want %v, %v", tt.attempts, er, gr, tt.er, tt.gr)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		attempts int
		reduced  bool
		want     time.Duration
	}{
		{0, false, 15 * time.Second},
		{50, false, 22500 * time.Millisecond},
		{100, false, 25 * time.Second},
		{0, true, 3 * time.Second},
		{50, true, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := Duration(tt.attempts, tt.reduced); got != tt.want {
			t.Errorf("Duration(%d, %v) = %s, want %s", tt.attempts, tt.reduced, got, tt.want)
		}
	}
}

func TestPopulationStaysUnderCaps(t *testing.T) {
	for _, attempts := range []int{0, 20, 60} {
		s, _, _ := newSystem(t)
		// Tall enough that emblems never reach the fade line during the run
		s.Resize(800, 100000)
		s.Start(attempts, false)
		ec, gc := Caps(attempts)

		for i := 0; i < 1500; i++ {
			s.Tick()
			e, g := s.Counts()
			if e > ec || g > gc {
				t.Fatalf("attempts=%d tick %d: %d emblems, %d glints exceed caps %d, %d", attempts, i, e, g, ec, gc)
			}
		}
		if e, _ := s.Counts(); e != ec {
			t.Errorf("attempts=%d: %d emblems after saturation, want cap %d", attempts, e, ec)
		}
	}
}

func TestLifetime(t *testing.T) {
	s, clk, sched := newSystem(t)
	done := 0
	s.OnDone(func() { done++ })

	s.Start(0, false)
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	clk.Advance(BaseDuration - time.Millisecond)
	sched.Run()
	if !s.Active() {
		t.Fatal("overlay ended early")
	}

	clk.Advance(time.Millisecond)
	sched.Run()
	if s.Active() || done != 1 {
		t.Fatalf("active=%v done=%d after the duration", s.Active(), done)
	}
	if e, g := s.Counts(); e+g != 0 {
		t.Errorf("%d particles left after expiry", e+g)
	}
	if sched.Pending() != 0 {
		t.Errorf("%d timers left after expiry", sched.Pending())
	}
}

func TestStopCancelsTimers(t *testing.T) {
	s, clk, sched := newSystem(t)
	done := 0
	s.OnDone(func() { done++ })

	s.Start(10, true)
	s.Stop()
	if sched.Pending() != 0 {
		t.Fatalf("%d timers survived Stop", sched.Pending())
	}
	clk.Advance(time.Minute)
	sched.Run()
	if done != 0 || s.Fade() != 0 {
		t.Fatalf("cancelled callbacks ran: done=%d fade=%v", done, s.Fade())
	}
}

func TestReducedFadeHolds(t *testing.T) {
	s, clk, sched := newSystem(t)
	s.Start(0, true)

	rec := &recorder{}
	s.Draw(rec)
	if rec.emblems+rec.glints != 0 {
		t.Fatal("drew before the first fade step")
	}

	clk.Advance(FadeInterval)
	sched.Run()
	if math.Abs(s.Fade()-FadeStep) > 1e-9 {
		t.Fatalf("fade = %v after one step", s.Fade())
	}

	clk.Advance(2*time.Second - FadeInterval)
	sched.Run()
	if math.Abs(s.Fade()-FadeTarget(0)) > 1e-6 {
		t.Fatalf("fade = %v, want hold at %v", s.Fade(), FadeTarget(0))
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want only the lifetime timer", sched.Pending())
	}

	s.Tick()
	if e, g := s.Counts(); e+g != 0 {
		t.Error("static path spawned particles")
	}

	clk.Advance(time.Second)
	sched.Run()
	if s.Active() {
		t.Error("reduced overlay outlived its duration")
	}
}

func TestArrangementDensity(t *testing.T) {
	tests := []struct {
		attempts        int
		emblems, glints int
	}{
		{0, 5, 3},
		{10, 5, 5},
		{30, 8, 5},
	}
	for _, tt := range tests {
		s, clk, sched := newSystem(t)
		s.Start(tt.attempts, true)
		clk.Advance(time.Second)
		sched.Run()

		rec := &recorder{}
		s.Draw(rec)
		if rec.emblems != tt.emblems || rec.glints != tt.glints {
			t.Errorf("attempts=%d: drew %d emblems, %d glints, want %d, %d",
				tt.attempts, rec.emblems, rec.glints, tt.emblems, tt.glints)
		}
		if rec.maxAlpha > 0.9+1e-9 {
			t.Errorf("attempts=%d: alpha %v above 0.9", tt.attempts, rec.maxAlpha)
		}
	}
}

func TestArrangementScale(t *testing.T) {
	shapes := Arrangement(geom.Size{W: 100, H: 50}, 0, 1, 0.1)
	first := shapes[0]
	if first.X != 50 || math.Abs(first.Y-15) > 1e-9 || math.Abs(first.Size-4) > 1e-9 {
		t.Errorf("first emblem = %+v", first)
	}
}

func TestMotionChangeRestarts(t *testing.T) {
	s, clk, sched := newSystem(t)
	done := 0
	s.OnDone(func() { done++ })

	s.Start(0, false)
	clk.Advance(10 * time.Second)
	sched.Run()

	s.SetReducedMotion(true)
	if !s.Active() || !s.ReducedMotion() {
		t.Fatal("overlay did not restart on the static path")
	}
	clk.Advance(ReducedDuration)
	sched.Run()
	if s.Active() || done != 1 {
		t.Fatalf("active=%v done=%d, want the reduced lifetime", s.Active(), done)
	}
}

func TestIntensityChangeRestartsLifetime(t *testing.T) {
	s, clk, sched := newSystem(t)
	s.Start(0, false)
	clk.Advance(14 * time.Second)
	sched.Run()

	s.SetIntensity(50)
	clk.Advance(2 * time.Second)
	sched.Run()
	if !s.Active() {
		t.Fatal("lifetime not recomputed after the intensity change")
	}
	clk.Advance(Duration(50, false))
	sched.Run()
	if s.Active() {
		t.Fatal("overlay outlived the new duration")
	}
}

func TestEmptyViewIsSkipped(t *testing.T) {
	s, _, _ := newSystem(t)
	s.Resize(0, 0)
	s.Start(5, false)
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	if e, g := s.Counts(); e+g != 0 {
		t.Fatalf("spawned %d particles into an empty view", e+g)
	}
	s.Draw(nil)
	s.Resize(800, 600)
	s.Draw(nil)
}

func TestEmblemFadesAboveLine(t *testing.T) {
	p := &Particle{Kind: Emblem, Y: 500, VY: -1, Alpha: 1, wobbleSpeed: 0.05}
	const h = 600.0

	ticks := 0
	for p.update(h, 1) {
		ticks++
		if p.Y >= h*emblemFadeLine && p.Alpha != 1 {
			t.Fatalf("faded at y=%v below the fade line", p.Y)
		}
		if ticks > 400 {
			t.Fatal("emblem never expired")
		}
	}
	if p.Alpha > 0 {
		t.Errorf("expired with alpha %v at y=%v", p.Alpha, p.Y)
	}
}

func TestGlintLife(t *testing.T) {
	p := &Particle{Kind: Glint, Y: 1000, VY: -1, Alpha: 1, Life: 1}
	ticks := 0
	for p.update(1200, 1) {
		ticks++
		if p.Alpha != p.Life {
			t.Fatal("glint alpha does not track life")
		}
	}
	if ticks < 60 || ticks > 67 {
		t.Errorf("glint lived %d ticks", ticks)
	}
}
