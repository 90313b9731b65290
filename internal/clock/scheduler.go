package clock

import (
	"sort"
	"time"
)

// Scheduler runs deferred callbacks cooperatively. Nothing happens until the
// owner calls Run, normally once per frame, so callbacks execute on the
// frame goroutine and never race with the state they touch.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock  Clock
	timers []*Timer
}

// Timer is a pending callback. Stop prevents any further invocation.
type Timer struct {
	due     time.Time
	every   time.Duration
	fn      func()
	stopped bool
}

// NewScheduler creates a scheduler reading time from c
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// Clock returns the scheduler's time source
func (s *Scheduler) Clock() Clock { return s.clock }

// After runs fn once, d from now
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	t := &Timer{due: s.clock.Now().Add(d), fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Every runs fn every d until stopped. Intervals below a millisecond are
// raised to one.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	t := &Timer{due: s.clock.Now().Add(d), every: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the timer was still pending.
// Stopping a nil timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Run fires every callback due at the current time, earliest first, and
// returns how many ran. Repeating timers that fell behind fire once per
// missed interval. Timers added by callbacks wait for the next Run.
func (s *Scheduler) Run() int {
	now := s.clock.Now()
	due := make([]*Timer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.stopped && !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })

	fired := 0
	for _, t := range due {
		for !t.stopped && !t.due.After(now) {
			if t.every == 0 {
				t.stopped = true
			} else {
				t.due = t.due.Add(t.every)
			}
			t.fn()
			fired++
		}
	}

	s.compact()
	return fired
}

// Pending returns the number of live timers
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// StopAll cancels every timer
func (s *Scheduler) StopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = s.timers[:0]
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
