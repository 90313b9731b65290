// Package evasion drives the control that cannot be clicked.
//
// The Controller classifies pointer and activation events, reports deliberate
// attempts to its owner, picks a profile from the behavior tables and turns
// it into a VisualState the host renders. It never signals success: the
// only way out is the other control.
package evasion

import (
	"log"
	"time"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/placement"
)

// State is the controller's escalation phase
type State int

const (
	// Idle: below the threshold, interactions only give subtle feedback
	Idle State = iota
	// Evading: interactions and nearby pointers move the control
	Evading
)

func (s State) String() string {
	if s == Evading {
		return "evading"
	}
	return "idle"
}

// Defaults for Config
const (
	DefaultThreshold       = 3
	DefaultDebounce        = 300 * time.Millisecond
	DefaultProximityRadius = 150.0
	DefaultVisualReset     = 500 * time.Millisecond
)

// Config tunes the controller
type Config struct {
	Threshold       int           // attempts before the control starts moving
	Debounce        time.Duration // minimum gap between counted attempts
	ProximityRadius float64       // pointer distance that triggers passive evasion
	VisualReset     time.Duration // transform/opacity/filter revert after this; 0 disables
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Threshold:       DefaultThreshold,
		Debounce:        DefaultDebounce,
		ProximityRadius: DefaultProximityRadius,
		VisualReset:     DefaultVisualReset,
	}
}

// VisualState is the desired look of the control. Renderers compare Revision
// to spot a new target.
type VisualState struct {
	Placed     bool       // false: the control sits at its home position
	Position   geom.Point // top-left, container-local
	Hops       []geom.Point
	Transform  behavior.Transform
	Opacity    float64 // 0 = unset
	Filter     behavior.Filter
	Transition behavior.Transition
	Revision   uint64
}

// Options wires a Controller
type Options struct {
	Config    Config
	Scheduler *clock.Scheduler
	Sampler   *placement.Sampler
	Content   *behavior.Content
	OnAttempt func()
}

// Controller is the evading control's state machine. It must be used from a
// single goroutine, the same one that runs its scheduler.
type Controller struct {
	cfg       Config
	sched     *clock.Scheduler
	clk       clock.Clock
	sampler   *placement.Sampler
	content   *behavior.Content
	onAttempt func()

	attempts int
	reduced  bool
	bounds   geom.Bounds
	size     geom.Size
	home     geom.Point

	lastAttempt time.Time
	counted     bool // lastAttempt is valid
	hovering    bool

	visual     VisualState
	resetTimer *clock.Timer
}

// New creates a controller. A nil Content falls back to the defaults.
func New(o Options) *Controller {
	content := o.Content
	if content == nil {
		content = behavior.DefaultContent()
	}
	onAttempt := o.OnAttempt
	if onAttempt == nil {
		onAttempt = func() {}
	}
	return &Controller{
		cfg:       o.Config,
		sched:     o.Scheduler,
		clk:       o.Scheduler.Clock(),
		sampler:   o.Sampler,
		content:   content,
		onAttempt: onAttempt,
	}
}

// State derives the phase from the attempt count
func (c *Controller) State() State {
	if c.attempts >= c.cfg.Threshold {
		return Evading
	}
	return Idle
}

// Attempts returns the last attempt count seen
func (c *Controller) Attempts() int { return c.attempts }

// SetAttempts syncs the attempt count from the owner. Decreases are ignored;
// use Reset for a full restart.
func (c *Controller) SetAttempts(n int) {
	if n <= c.attempts {
		return
	}
	before := c.State()
	c.attempts = n
	if before == Idle && c.State() == Evading {
		log.Printf("evasion: evading from attempt %d", n)
	}
}

// Reset returns to the initial state: zero attempts, home position, neutral look
func (c *Controller) Reset() {
	c.resetTimer.Stop()
	c.resetTimer = nil
	c.attempts = 0
	c.counted = false
	c.hovering = false
	c.visual = VisualState{Revision: c.visual.Revision + 1}
}

// SetBounds updates the container measurement. A placed control that no
// longer fits goes back home with a neutral look.
func (c *Controller) SetBounds(b geom.Bounds) {
	if b == c.bounds {
		return
	}
	c.bounds = b
	if !c.visual.Placed || b.Empty() {
		return
	}
	if !geom.RectAt(c.visual.Position, c.size).Within(b.Width, b.Height) {
		c.resetTimer.Stop()
		c.visual = VisualState{Revision: c.visual.Revision + 1}
	}
}

// Bounds returns the current container measurement
func (c *Controller) Bounds() geom.Bounds { return c.bounds }

// SetSize records the control's measured size
func (c *Controller) SetSize(s geom.Size) { c.size = s }

// Size returns the control's size
func (c *Controller) Size() geom.Size { return c.size }

// SetHome sets where the control sits before its first move
func (c *Controller) SetHome(p geom.Point) { c.home = p }

// SetReducedMotion switches motion mode. Pending visual timers are dropped
// and the look goes neutral so nothing animates under the new preference.
func (c *Controller) SetReducedMotion(reduced bool) {
	if reduced == c.reduced {
		return
	}
	c.reduced = reduced
	c.resetTimer.Stop()
	c.resetTimer = nil
	c.neutral()
}

// Position returns the control's current top-left corner
func (c *Controller) Position() geom.Point {
	if c.visual.Placed {
		return c.visual.Position
	}
	return c.home
}

// Rect returns the control's current box
func (c *Controller) Rect() geom.Rect { return geom.RectAt(c.Position(), c.size) }

// Visual returns the desired visual state
func (c *Controller) Visual() VisualState {
	v := c.visual
	v.Hops = append([]geom.Point(nil), c.visual.Hops...)
	return v
}

// Label returns the control's caption
func (c *Controller) Label() string { return c.content.Label(c.attempts) }

// Feedback returns the message for the surrounding view
func (c *Controller) Feedback() string { return c.content.Feedback(c.attempts) }

// Press handles a primary activation (click, tap, key). It is deliberate and
// always answers with an evasion, never success.
func (c *Controller) Press(p geom.Point) {
	c.apply(p, true)
}

// Focus handles keyboard focus entering the control
func (c *Controller) Focus() {
	c.apply(c.Rect().Center(), true)
}

// Enter handles the pointer entering the control. Only the first entry after
// a Leave is deliberate.
func (c *Controller) Enter(p geom.Point) {
	if c.hovering {
		return
	}
	c.hovering = true
	c.apply(p, true)
}

// Leave handles the pointer leaving the control
func (c *Controller) Leave() { c.hovering = false }

// Move handles continuous pointer movement. It derives enter/leave from the
// control's box and, while evading, flees a pointer that comes too close.
func (c *Controller) Move(p geom.Point) {
	inside := c.size.W > 0 && c.Rect().Contains(p)
	switch {
	case inside && !c.hovering:
		c.Enter(p)
		return
	case !inside && c.hovering:
		c.Leave()
	}

	if c.State() != Evading {
		return
	}
	if p.Dist(c.Rect().Center()) < c.cfg.ProximityRadius {
		c.apply(p, false)
	}
}

// Close cancels pending timers
func (c *Controller) Close() {
	c.resetTimer.Stop()
	c.resetTimer = nil
}

// apply runs one behavior application. The tier is chosen from the attempt
// count before onAttempt runs, so an owner that syncs synchronously does not
// shift the tier of the interaction that caused it.
func (c *Controller) apply(pointer geom.Point, deliberate bool) {
	attempts := c.attempts
	state := c.State()

	if deliberate {
		now := c.clk.Now()
		if !c.counted || now.Sub(c.lastAttempt) >= c.cfg.Debounce {
			c.lastAttempt = now
			c.counted = true
			c.onAttempt()
		}
	}

	profile := behavior.Resolve(attempts, c.reduced, c.cfg.Threshold)
	if !deliberate && state == Evading {
		profile.Move = true
		profile.Strategy = placement.Repel(pointer)
	}
	if profile.Strategy.Kind == placement.KindRepel {
		profile.Strategy.From = pointer
	}

	v := c.visual
	v.Transform = profile.Transform
	v.Opacity = profile.Opacity
	v.Filter = profile.Filter
	v.Transition = profile.Transition
	v.Hops = nil

	if profile.Move && state == Evading && !c.bounds.Empty() && !c.size.Empty() {
		hops := c.sampler.SampleHops(c.size, c.bounds, profile.Strategy)
		v.Placed = true
		v.Position = hops[len(hops)-1]
		if !c.reduced {
			v.Hops = hops[:len(hops)-1]
		}
	}

	v.Revision++
	c.visual = v
	c.scheduleReset(profile)
}

func (c *Controller) scheduleReset(p behavior.Profile) {
	c.resetTimer.Stop()
	c.resetTimer = nil
	if c.cfg.VisualReset <= 0 || !p.HasVisuals() {
		return
	}
	c.resetTimer = c.sched.After(c.cfg.VisualReset, c.neutral)
}

// neutral clears transform, opacity and filter, keeping the position
func (c *Controller) neutral() {
	if !c.visual.Transform.IsZero() || c.visual.Opacity != 0 || !c.visual.Filter.IsZero() {
		c.visual.Transform = behavior.Transform{}
		c.visual.Opacity = 0
		c.visual.Filter = behavior.Filter{}
		c.visual.Hops = nil
		c.visual.Revision++
	}
	c.resetTimer = nil
}
