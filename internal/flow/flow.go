// Package flow is the three-screen narrative around the evading control. It
// owns the attempt counter.
package flow

import "log"

// Screen is the visible step of the narrative
type Screen int

const (
	Intro       Screen = iota // teaser with a single "Tell me!" button
	Question                  // the question, Yes and the evading No
	Celebrating               // answered; the overlay runs
)

func (s Screen) String() string {
	switch s {
	case Intro:
		return "intro"
	case Question:
		return "question"
	case Celebrating:
		return "celebrating"
	}
	return "unknown"
}

// Flow tracks the current screen and attempt count. Not safe for concurrent use.
type Flow struct {
	screen   Screen
	attempts int
	onChange []func(Screen, int)
}

// New starts at the intro with no attempts
func New() *Flow { return &Flow{} }

// Screen returns the current screen
func (f *Flow) Screen() Screen { return f.screen }

// Attempts returns the number of counted attempts at the No button
func (f *Flow) Attempts() int { return f.attempts }

// OnChange registers fn to run after every screen change or attempt
func (f *Flow) OnChange(fn func(screen Screen, attempts int)) {
	f.onChange = append(f.onChange, fn)
}

// Begin moves from the intro to the question. It reports whether the screen
// changed.
func (f *Flow) Begin() bool {
	if f.screen != Intro {
		return false
	}
	f.set(Question)
	return true
}

// Attempt counts one try at the No button. Attempts only count on the
// question screen.
func (f *Flow) Attempt() int {
	if f.screen != Question {
		return f.attempts
	}
	f.attempts++
	log.Printf("flow: attempt %d", f.attempts)
	f.notify()
	return f.attempts
}

// Accept answers the question
func (f *Flow) Accept() bool {
	if f.screen != Question {
		return false
	}
	log.Printf("flow: accepted after %d attempts", f.attempts)
	f.set(Celebrating)
	return true
}

// Restart returns to the intro and clears the attempt counter
func (f *Flow) Restart() {
	if f.screen == Intro && f.attempts == 0 {
		return
	}
	f.attempts = 0
	f.set(Intro)
}

func (f *Flow) set(s Screen) {
	f.screen = s
	log.Printf("flow: screen %s", s)
	f.notify()
}

func (f *Flow) notify() {
	for _, fn := range f.onChange {
		fn(f.screen, f.attempts)
	}
}
