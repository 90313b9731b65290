package evasion

import (
	"math/rand"
	"testing"
	"time"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/placement"
)

var (
	testBounds = geom.Bounds{Width: 800, Height: 600}
	testSize   = geom.Size{W: 160, H: 64}
	testHome   = geom.Point{X: 520, Y: 268}
)

type harness struct {
	clk      *clock.Mock
	sched    *clock.Scheduler
	ctl      *Controller
	attempts int // the owner's counter
	calls    int
}

// newHarness wires a controller whose owner increments its counter and syncs
// it back synchronously, as the hosts do
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{clk: clock.NewMock(time.Unix(0, 0))}
	h.sched = clock.NewScheduler(h.clk)
	h.ctl = New(Options{
		Config:    DefaultConfig(),
		Scheduler: h.sched,
		Sampler:   placement.NewSampler(rand.New(rand.NewSource(11))),
		OnAttempt: func() {
			h.calls++
			h.attempts++
			h.ctl.SetAttempts(h.attempts)
		},
	})
	h.ctl.SetBounds(testBounds)
	h.ctl.SetSize(testSize)
	h.ctl.SetHome(testHome)
	return h
}

func (h *harness) evading(n int) {
	h.attempts = n
	h.ctl.SetAttempts(n)
}

func TestDebounce(t *testing.T) {
	h := newHarness(t)

	h.ctl.Press(testHome)
	h.clk.Advance(299 * time.Millisecond)
	h.ctl.Press(testHome)
	if h.calls != 1 {
		t.Fatalf("presses 299ms apart: %d attempts, want 1", h.calls)
	}

	h.clk.Advance(time.Millisecond)
	h.ctl.Press(testHome)
	if h.calls != 2 {
		t.Fatalf("presses 300ms after the counted one: %d attempts, want 2", h.calls)
	}
}

func TestIdleNeverMoves(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < DefaultThreshold-1; i++ {
		h.ctl.Press(testHome)
		h.clk.Advance(time.Second)
		if h.ctl.Visual().Placed {
			t.Fatalf("press %d moved the control while idle", i)
		}
	}
	if h.ctl.State() != Idle {
		t.Fatalf("state = %s, want idle at %d attempts", h.ctl.State(), h.attempts)
	}
	if h.ctl.Visual().Transform.IsZero() && h.ctl.Visual().Opacity == 0 && h.ctl.Visual().Filter.IsZero() {
		t.Error("idle press should still give a visual cue")
	}
}

func TestTierIsChosenBeforeTheAttemptCounts(t *testing.T) {
	h := newHarness(t)
	h.evading(DefaultThreshold - 1)

	h.ctl.Press(testHome)
	if h.ctl.State() != Evading {
		t.Fatalf("counter crossed the threshold, state = %s", h.ctl.State())
	}
	if h.ctl.Visual().Placed {
		t.Fatal("the interaction that crossed the threshold should not move the control")
	}

	h.clk.Advance(time.Second)
	h.ctl.Press(h.ctl.Rect().Center())
	if !h.ctl.Visual().Placed {
		t.Fatal("first interaction while evading should move the control")
	}
}

func TestEvadingPressAvoidsZone(t *testing.T) {
	h := newHarness(t)
	h.evading(DefaultThreshold)
	zone := placement.NewSampler(nil).ProtectedZone(testBounds)

	for i := 0; i < 40; i++ {
		h.ctl.Press(h.ctl.Rect().Center())
		h.clk.Advance(time.Second)
		v := h.ctl.Visual()
		if !v.Placed {
			t.Fatalf("press %d did not move the control", i)
		}
		if geom.RectAt(v.Position, testSize).Intersects(zone) {
			t.Fatalf("press %d placed the control on the protected zone: %+v", i, v.Position)
		}
	}
}

func TestProximityIsPassive(t *testing.T) {
	h := newHarness(t)
	h.evading(10)
	start := h.ctl.Visual().Revision

	// Just outside the box, well inside the radius
	near := geom.Point{X: testHome.X - 10, Y: testHome.Y + 32}
	h.ctl.Move(near)

	v := h.ctl.Visual()
	if v.Revision == start || !v.Placed {
		t.Fatal("nearby pointer should trigger an evasion")
	}
	if h.calls != 0 {
		t.Fatalf("proximity counted %d attempts", h.calls)
	}
	if v.Position == testHome {
		t.Error("control did not leave its home position")
	}
}

func TestProximityIgnoredWhenFarOrIdle(t *testing.T) {
	h := newHarness(t)
	far := geom.Point{X: 20, Y: 20}

	h.ctl.Move(geom.Point{X: testHome.X - 10, Y: testHome.Y})
	if h.ctl.Visual().Revision != 0 {
		t.Fatal("idle proximity changed the visual state")
	}

	h.evading(5)
	h.ctl.Move(far)
	if h.ctl.Visual().Revision != 0 {
		t.Fatal("distant pointer changed the visual state")
	}
}

func TestHoverEntryIsDeliberateOnce(t *testing.T) {
	h := newHarness(t)
	inside := geom.Point{X: testHome.X + 5, Y: testHome.Y + 5}

	h.ctl.Move(inside)
	h.clk.Advance(time.Second)
	h.ctl.Move(inside)
	if h.calls != 1 {
		t.Fatalf("hovering twice without leaving counted %d attempts", h.calls)
	}

	h.ctl.Move(geom.Point{X: 0, Y: 0})
	h.clk.Advance(time.Second)
	h.ctl.Move(inside)
	if h.calls != 2 {
		t.Fatalf("re-entry counted %d attempts, want 2", h.calls)
	}
}

func TestUnmeasuredBoundsStillCount(t *testing.T) {
	h := newHarness(t)
	h.ctl.SetBounds(geom.Bounds{})
	h.evading(6)

	h.ctl.Press(testHome)
	if h.calls != 1 {
		t.Fatalf("attempt not counted with empty bounds")
	}
	v := h.ctl.Visual()
	if v.Placed {
		t.Fatal("control positioned with empty bounds")
	}
	if v.Revision == 0 || v.Opacity == 0 {
		t.Errorf("visuals should still update: %+v", v)
	}
	if h.ctl.Label() != behavior.DefaultContent().Label(7) {
		t.Errorf("label = %q", h.ctl.Label())
	}
}

func TestVisualReset(t *testing.T) {
	h := newHarness(t)
	h.evading(3) // shrink and dodge

	h.ctl.Press(testHome)
	pos := h.ctl.Visual().Position
	if h.ctl.Visual().Transform.Scale == 0 {
		t.Fatal("tier 3 should scale")
	}

	h.clk.Advance(DefaultVisualReset)
	h.sched.Run()

	v := h.ctl.Visual()
	if !v.Transform.IsZero() {
		t.Errorf("transform not reset: %+v", v.Transform)
	}
	if v.Position != pos || !v.Placed {
		t.Errorf("reset moved the control: %+v -> %+v", pos, v.Position)
	}
}

func TestNewerApplicationCancelsPendingReset(t *testing.T) {
	h := newHarness(t)
	h.evading(5) // tilt

	h.ctl.Press(testHome)
	h.clk.Advance(400 * time.Millisecond)
	h.ctl.Move(geom.Point{X: -1000, Y: -1000}) // no effect
	h.ctl.Press(h.ctl.Rect().Center())         // applies tier 6, resets at 900ms
	h.clk.Advance(200 * time.Millisecond)
	h.sched.Run()

	if h.ctl.Visual().Opacity == 0 {
		t.Fatal("first reset fired after being superseded")
	}
	h.clk.Advance(300 * time.Millisecond)
	h.sched.Run()
	if h.ctl.Visual().Opacity != 0 {
		t.Fatal("second reset did not fire")
	}
}

func TestAttemptsNeverDecreaseExceptReset(t *testing.T) {
	h := newHarness(t)
	h.evading(7)
	h.ctl.SetAttempts(4)
	if h.ctl.Attempts() != 7 {
		t.Fatalf("attempts = %d, want 7", h.ctl.Attempts())
	}

	h.ctl.Press(testHome)
	h.ctl.Reset()
	if h.ctl.Attempts() != 0 || h.ctl.State() != Idle || h.ctl.Visual().Placed {
		t.Fatalf("Reset left state behind: attempts=%d state=%s", h.ctl.Attempts(), h.ctl.State())
	}
}

func TestShrinkingBoundsSendsControlHome(t *testing.T) {
	h := newHarness(t)
	h.evading(4)
	h.ctl.Press(geom.Point{X: 100, Y: 100})
	if !h.ctl.Visual().Placed {
		t.Fatal("expected a placement")
	}
	pos := h.ctl.Position()

	h.ctl.SetBounds(geom.Bounds{Width: pos.X + 10, Height: pos.Y + 10})
	if h.ctl.Visual().Placed {
		t.Fatal("control left outside the new bounds")
	}
	if h.ctl.Position() != testHome {
		t.Errorf("position = %+v, want home", h.ctl.Position())
	}
}

func TestMultiHopEmitsHopsOnlyWithMotion(t *testing.T) {
	h := newHarness(t)
	h.evading(8)
	h.ctl.Press(testHome)
	if n := len(h.ctl.Visual().Hops); n != 1 {
		t.Fatalf("multi-hop tier emitted %d intermediate hops, want 1", n)
	}

	r := newHarness(t)
	r.ctl.SetReducedMotion(true)
	r.evading(8)
	r.ctl.Press(testHome)
	if n := len(r.ctl.Visual().Hops); n != 0 {
		t.Fatalf("reduced motion emitted %d hops", n)
	}
}

func TestReducedMotionChangeDropsTimers(t *testing.T) {
	h := newHarness(t)
	h.evading(3)
	h.ctl.Press(testHome)
	if h.sched.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.sched.Pending())
	}

	h.ctl.SetReducedMotion(true)
	if h.sched.Pending() != 0 {
		t.Fatalf("timers survived the motion change: %d", h.sched.Pending())
	}
	if !h.ctl.Visual().Transform.IsZero() {
		t.Error("transform kept after switching to reduced motion")
	}
}
