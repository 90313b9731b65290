// Package celebration runs the particle burst shown once the question is
// answered.
//
// A System owns its particles and timers. The host calls Tick once per frame
// and Draw with a Canvas; everything else is scheduled on the shared
// clock.Scheduler, so all mutation happens on the frame goroutine.
package celebration

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/geom"
)

// Population and lifetime tuning
const (
	EmblemCap       = 90
	GlintCap        = 40
	EmblemSpawnRate = 0.45
	GlintSpawnRate  = 0.3
	MaxEmblemRate   = 0.8
	MaxGlintRate    = 0.6
	MaxIntensity    = 2.5

	BaseDuration    = 15 * time.Second
	DurationStep    = 150 * time.Millisecond // bonus per attempt
	DurationCap     = 10 * time.Second       // bonus ceiling
	ReducedDuration = 3 * time.Second

	FadeInterval = 50 * time.Millisecond
	FadeStep     = 0.05
)

// Intensity maps an attempt count to the burst multiplier in [1, 2.5]
func Intensity(attempts int) float64 {
	if attempts < 0 {
		attempts = 0
	}
	return math.Min(1+float64(attempts)/30, MaxIntensity)
}

// Caps returns the live-particle ceilings for an attempt count
func Caps(attempts int) (emblems, glints int) {
	m := Intensity(attempts)
	return int(math.Floor(EmblemCap * m)), int(math.Floor(GlintCap * m))
}

// SpawnRates returns the per-tick spawn probabilities for an attempt count
func SpawnRates(attempts int) (emblem, glint float64) {
	m := Intensity(attempts)
	return math.Min(EmblemSpawnRate*m, MaxEmblemRate), math.Min(GlintSpawnRate*m, MaxGlintRate)
}

// Duration returns how long the overlay stays active
func Duration(attempts int, reduced bool) time.Duration {
	if reduced {
		return ReducedDuration
	}
	if attempts < 0 {
		attempts = 0
	}
	bonus := time.Duration(attempts) * DurationStep
	if bonus > DurationCap {
		bonus = DurationCap
	}
	return BaseDuration + bonus
}

// FadeTarget is the opacity the static arrangement settles at
func FadeTarget(attempts int) float64 {
	return math.Min(0.7*Intensity(attempts), 0.9)
}

// Canvas receives draw calls. Coordinates are shape centers in view units.
type Canvas interface {
	Emblem(x, y, size, rotation, alpha, hue float64)
	Glint(x, y, size, rotation, alpha float64)
}

// Config tunes a System
type Config struct {
	Scale float64 // view units per pixel; 0 means 1
}

// Options wires a System
type Options struct {
	Config    Config
	Scheduler *clock.Scheduler
	Rand      *rand.Rand // nil: seeded from the clock
}

// System is the celebration overlay. Not safe for concurrent use.
type System struct {
	scale float64
	sched *clock.Scheduler
	rng   *rand.Rand
	noise *perlin.Perlin

	view     geom.Size
	active   bool
	reduced  bool
	attempts int
	frame    int

	emblems []*Particle
	glints  []*Particle

	fade       float64
	fadeTarget float64

	gen       uint64 // bumped whenever timers are torn down
	doneTimer *clock.Timer
	fadeTimer *clock.Timer
	onDone    func()
}

// New creates an idle System
func New(o Options) *System {
	scale := o.Config.Scale
	if scale <= 0 {
		scale = 1
	}
	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(o.Scheduler.Clock().Now().UnixNano()))
	}
	return &System{
		scale: scale,
		sched: o.Scheduler,
		rng:   rng,
		noise: perlin.NewPerlin(2, 2, 3, rng.Int63()),
	}
}

// OnDone registers a callback fired when the overlay expires on its own
func (s *System) OnDone(fn func()) { s.onDone = fn }

// Active reports whether the overlay is showing
func (s *System) Active() bool { return s.active }

// ReducedMotion reports which path the overlay uses
func (s *System) ReducedMotion() bool { return s.reduced }

// Attempts returns the intensity input
func (s *System) Attempts() int { return s.attempts }

// Counts returns the live particle counts
func (s *System) Counts() (emblems, glints int) { return len(s.emblems), len(s.glints) }

// Fade returns the static arrangement's current opacity
func (s *System) Fade() float64 { return s.fade }

// Resize sets the view size. An empty view pauses the simulation and drawing.
func (s *System) Resize(w, h float64) { s.view = geom.Size{W: w, H: h} }

// Start (re)starts the overlay for the given intensity and motion mode
func (s *System) Start(attempts int, reduced bool) {
	s.teardown()
	s.active = true
	s.attempts = attempts
	s.reduced = reduced
	s.frame = 0
	s.emblems = s.emblems[:0]
	s.glints = s.glints[:0]
	s.arm()
	log.Printf("celebration: start attempts=%d reduced=%v duration=%s", attempts, reduced, Duration(attempts, reduced))
}

// Stop hides the overlay without firing OnDone
func (s *System) Stop() {
	if !s.active {
		return
	}
	s.teardown()
	s.clear()
	log.Printf("celebration: stopped")
}

// Close releases timers and forgets the OnDone callback
func (s *System) Close() {
	s.teardown()
	s.clear()
	s.onDone = nil
}

// SetReducedMotion switches path. An active overlay restarts on the new path.
func (s *System) SetReducedMotion(reduced bool) {
	if reduced == s.reduced {
		return
	}
	s.reduced = reduced
	if s.active {
		s.Start(s.attempts, reduced)
	}
}

// SetIntensity changes the intensity input. An active overlay restarts its
// lifetime and fade from now and drops particles above the new caps.
func (s *System) SetIntensity(attempts int) {
	if attempts == s.attempts {
		return
	}
	s.attempts = attempts
	if !s.active {
		return
	}
	s.teardown()
	s.active = true
	s.arm()

	ec, gc := Caps(attempts)
	if len(s.emblems) > ec {
		s.emblems = s.emblems[:ec]
	}
	if len(s.glints) > gc {
		s.glints = s.glints[:gc]
	}
}

// Tick advances the simulation one frame: spawn, update, drop expired
func (s *System) Tick() {
	if !s.active || s.reduced || s.view.Empty() {
		return
	}
	s.frame++

	ec, gc := Caps(s.attempts)
	er, gr := SpawnRates(s.attempts)
	if len(s.emblems) < ec && s.rng.Float64() < er {
		s.emblems = append(s.emblems, newEmblem(s.rng, s.view.W, s.view.H, s.scale))
	}
	if len(s.glints) < gc && s.rng.Float64() < gr {
		s.glints = append(s.glints, newGlint(s.rng, s.view.W, s.view.H, s.scale))
	}

	s.emblems = s.step(s.emblems)
	s.glints = s.step(s.glints)
}

func (s *System) step(ps []*Particle) []*Particle {
	live := ps[:0]
	for _, p := range ps {
		if p.update(s.view.H, s.scale) {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(ps); i++ {
		ps[i] = nil
	}
	return live
}

// Draw renders the current frame. A nil canvas or an empty view draws nothing.
func (s *System) Draw(c Canvas) {
	if c == nil || !s.active || s.view.Empty() {
		return
	}
	if s.reduced {
		if s.fade <= 0 {
			return
		}
		for _, sh := range Arrangement(s.view, s.attempts, s.fade, s.scale) {
			if sh.Kind == Glint {
				c.Glint(sh.X, sh.Y, sh.Size, 0, sh.Alpha)
			} else {
				c.Emblem(sh.X, sh.Y, sh.Size, 0, sh.Alpha, sh.Hue)
			}
		}
		return
	}

	t := float64(s.frame)
	for _, p := range s.emblems {
		hue := p.Hue + 12*s.noise.Noise1D(p.phase+t*0.01)
		c.Emblem(p.X, p.Y, p.Size, p.Rotation, p.Alpha, hue)
	}
	for _, p := range s.glints {
		twinkle := geom.Clamp(0.8+0.6*s.noise.Noise1D(p.phase+t*0.08), 0, 1)
		c.Glint(p.X, p.Y, p.Size, p.Rotation, p.Alpha*twinkle)
	}
}

// arm schedules the lifetime timer and, on the static path, the fade-in
func (s *System) arm() {
	gen := s.gen
	s.doneTimer = s.sched.After(Duration(s.attempts, s.reduced), func() {
		if gen != s.gen {
			return
		}
		s.expire()
	})

	if !s.reduced {
		return
	}
	s.fade = 0
	s.fadeTarget = FadeTarget(s.attempts)
	s.fadeTimer = s.sched.Every(FadeInterval, func() {
		if gen != s.gen {
			return
		}
		next := s.fade + FadeStep
		if next > s.fadeTarget+1e-9 {
			s.fadeTimer.Stop()
			return
		}
		s.fade = next
	})
}

func (s *System) expire() {
	s.teardown()
	s.clear()
	log.Printf("celebration: done after %s", Duration(s.attempts, s.reduced))
	if s.onDone != nil {
		s.onDone()
	}
}

// teardown cancels every timer; callbacks already queued see a new generation
func (s *System) teardown() {
	s.gen++
	s.doneTimer.Stop()
	s.fadeTimer.Stop()
	s.doneTimer = nil
	s.fadeTimer = nil
}

func (s *System) clear() {
	s.active = false
	s.fade = 0
	for i := range s.emblems {
		s.emblems[i] = nil
	}
	for i := range s.glints {
		s.glints[i] = nil
	}
	s.emblems = s.emblems[:0]
	s.glints = s.glints[:0]
}
