// Package scene wires the narrative flow, the evading control and the
// celebration together for a host. Hosts translate their input into Scene
// calls, call Tick once per frame and render what the accessors return.
package scene

import (
	"log"
	"math/rand"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/celebration"
	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/evasion"
	"github.com/olivierh59500/inevitable-go/internal/flow"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/placement"
)

// Fixed captions
const (
	IntroTitle    = "Do you wanna know a secret?"
	IntroButton   = "Tell me!"
	QuestionTitle = "Will you be my valentine?"
	YesLabel      = "Yes!"
	SuccessTitle  = "Yay! Best answer ever."
	RestartLabel  = "Ask me again!"
)

// Focus is the keyboard focus on the question screen
type Focus int

const (
	FocusNone Focus = iota
	FocusYes
	FocusNo
)

// Metrics sizes the scene in the host's units
type Metrics struct {
	Button geom.Size // intro, Yes and restart buttons
	No     geom.Size
	Gap    float64 // between Yes and the No button's home
}

// Options wires a Scene
type Options struct {
	Metrics       Metrics
	Evasion       evasion.Config
	Celebration   celebration.Config
	Content       *behavior.Content
	Clock         clock.Clock
	Rand          *rand.Rand
	ReducedMotion bool
	// Sampler overrides the default pixel-tuned sampler
	Sampler *placement.Sampler
	// OnCelebrate runs when the question is answered, before the overlay starts
	OnCelebrate func(attempts int)
}

// Scene is one running session. Not safe for concurrent use.
type Scene struct {
	metrics Metrics
	content *behavior.Content
	sched   *clock.Scheduler
	flow    *flow.Flow
	no      *evasion.Controller
	fx      *celebration.System

	view        geom.Size
	anim        *animator
	reduced     bool
	focus       Focus
	onCelebrate func(int)
}

// New builds a scene at the intro screen
func New(o Options) *Scene {
	clk := o.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(clk.Now().UnixNano()))
	}
	content := o.Content
	if content == nil {
		content = behavior.DefaultContent()
	}
	sampler := o.Sampler
	if sampler == nil {
		sampler = placement.NewSampler(rng)
	}

	s := &Scene{
		metrics:     o.Metrics,
		content:     content,
		sched:       clock.NewScheduler(clk),
		flow:        flow.New(),
		reduced:     o.ReducedMotion,
		onCelebrate: o.OnCelebrate,
	}
	s.no = evasion.New(evasion.Options{
		Config:    o.Evasion,
		Scheduler: s.sched,
		Sampler:   sampler,
		Content:   content,
		OnAttempt: func() { s.flow.Attempt() },
	})
	s.no.SetReducedMotion(s.reduced)
	s.no.SetSize(o.Metrics.No)
	s.fx = celebration.New(celebration.Options{
		Config:    o.Celebration,
		Scheduler: s.sched,
		Rand:      rng,
	})
	s.flow.OnChange(s.changed)
	return s
}

func (s *Scene) changed(screen flow.Screen, attempts int) {
	switch screen {
	case flow.Intro:
		s.no.Reset()
		s.fx.Stop()
		s.focus = FocusNone
	case flow.Question:
		s.no.SetAttempts(attempts)
	case flow.Celebrating:
		if s.fx.Active() {
			return
		}
		s.focus = FocusNone
		if s.onCelebrate != nil {
			s.onCelebrate(attempts)
		}
		s.fx.Start(attempts, s.reduced)
	}
}

// Resize lays the scene out for a view of w by h
func (s *Scene) Resize(w, h float64) {
	s.view = geom.Size{W: w, H: h}
	s.no.SetBounds(geom.Bounds{Width: w, Height: h})
	s.no.SetHome(s.noHome())
	s.fx.Resize(w, h)
}

// View returns the current view size
func (s *Scene) View() geom.Size { return s.view }

func (s *Scene) center() geom.Point {
	return geom.Point{X: s.view.W / 2, Y: s.view.H / 2}
}

func (s *Scene) noHome() geom.Point {
	yes := s.YesButton()
	return geom.Point{X: yes.Right() + s.metrics.Gap, Y: s.center().Y - s.metrics.No.H/2}
}

// PrimaryButton is the intro button, centered in the view, or the restart
// button below the success message
func (s *Scene) PrimaryButton() geom.Rect {
	c := s.center()
	if s.flow.Screen() == flow.Celebrating {
		c.Y += s.metrics.Button.H * 1.5
	}
	return geom.CenteredRect(c, s.metrics.Button)
}

// YesButton sits on the view center, inside the No button's protected zone
func (s *Scene) YesButton() geom.Rect {
	return geom.CenteredRect(s.center(), s.metrics.Button)
}

// NoButton is the evading control's current box
func (s *Scene) NoButton() geom.Rect { return s.no.Rect() }

// No exposes the evading control for rendering
func (s *Scene) No() *evasion.Controller { return s.no }

// Celebration exposes the overlay for rendering
func (s *Scene) Celebration() *celebration.System { return s.fx }

// Screen returns the current narrative screen
func (s *Scene) Screen() flow.Screen { return s.flow.Screen() }

// Attempts returns the counted attempts at the No button
func (s *Scene) Attempts() int { return s.flow.Attempts() }

// Focused returns the keyboard focus
func (s *Scene) Focused() Focus { return s.focus }

// ReducedMotion reports the motion preference
func (s *Scene) ReducedMotion() bool { return s.reduced }

// Title returns the heading for the current screen
func (s *Scene) Title() string {
	switch s.flow.Screen() {
	case flow.Question:
		return QuestionTitle
	case flow.Celebrating:
		return SuccessTitle
	}
	return IntroTitle
}

// Feedback returns the line under the heading on the question screen
func (s *Scene) Feedback() string {
	if s.flow.Screen() != flow.Question {
		return ""
	}
	return s.no.Feedback()
}

// Badge returns the persistence badge shown on the success screen
func (s *Scene) Badge() string {
	if s.flow.Screen() != flow.Celebrating {
		return ""
	}
	return Badge(s.flow.Attempts())
}

// Badge names the persistence tier for an attempt count
func Badge(attempts int) string {
	switch {
	case attempts > 30:
		return "Legendary Persistence!"
	case attempts > 20:
		return "Epic Journey!"
	case attempts > 10:
		return "Worth the wait!"
	}
	return ""
}

// Click handles a primary activation at p
func (s *Scene) Click(p geom.Point) {
	switch s.flow.Screen() {
	case flow.Intro:
		if s.PrimaryButton().Contains(p) {
			s.flow.Begin()
		}
	case flow.Question:
		switch {
		case s.NoLook().Box().Contains(p):
			s.no.Press(p)
		case s.YesButton().Contains(p):
			s.flow.Accept()
		}
	case flow.Celebrating:
		if s.PrimaryButton().Contains(p) {
			s.flow.Restart()
		}
	}
}

// Pointer handles pointer movement
func (s *Scene) Pointer(p geom.Point) {
	if s.flow.Screen() == flow.Question {
		s.no.Move(p)
	}
}

// FocusNext cycles keyboard focus between Yes and No. Focusing No counts as
// an interaction with it.
func (s *Scene) FocusNext() {
	if s.flow.Screen() != flow.Question {
		return
	}
	if s.focus == FocusYes {
		s.focus = FocusNo
		s.no.Focus()
		return
	}
	s.focus = FocusYes
}

// Activate presses whatever the keyboard focus is on
func (s *Scene) Activate() {
	switch s.flow.Screen() {
	case flow.Intro:
		s.flow.Begin()
	case flow.Question:
		switch s.focus {
		case FocusYes:
			s.flow.Accept()
		case FocusNo:
			s.no.Press(s.no.Rect().Center())
		}
	case flow.Celebrating:
		s.flow.Restart()
	}
}

// Restart goes back to the intro from anywhere
func (s *Scene) Restart() { s.flow.Restart() }

// SetReducedMotion switches the motion preference for every component
func (s *Scene) SetReducedMotion(reduced bool) {
	if reduced == s.reduced {
		return
	}
	s.reduced = reduced
	s.no.SetReducedMotion(reduced)
	s.fx.SetReducedMotion(reduced)
	log.Printf("scene: reduced motion %v", reduced)
}

// Tick runs due timers and advances the celebration one frame
func (s *Scene) Tick() {
	s.sched.Run()
	s.fx.Tick()
}

// Close stops every timer
func (s *Scene) Close() {
	s.no.Close()
	s.fx.Close()
	s.sched.StopAll()
}
