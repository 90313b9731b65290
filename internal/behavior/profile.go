// Package behavior maps the attempt count to an evasion profile: where the
// control should go next and how it should look while getting there.
//
// Selection is a pure lookup. Tiers 0..len(tiers)-1 are explicit; beyond
// that an independent cyclic list repeats forever. Below the evasion
// threshold a separate premonition table gives feedback without moving the
// control.
package behavior

import (
	"time"

	"github.com/olivierh59500/inevitable-go/internal/motion"
	"github.com/olivierh59500/inevitable-go/internal/placement"
)

// Transform is a visual transform around the control's center.
// Scale 0 means unscaled.
type Transform struct {
	Scale  float64
	Rotate float64 // degrees
}

// IsZero reports whether the transform is neutral
func (t Transform) IsZero() bool { return t == Transform{} }

// ScaleOr returns the scale, or 1 when unset
func (t Transform) ScaleOr() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Filter holds image filters. Brightness 0 means unchanged.
type Filter struct {
	Blur       float64
	Brightness float64
}

// IsZero reports whether no filter is set
func (f Filter) IsZero() bool { return f == Filter{} }

// BrightnessOr returns the brightness factor, or 1 when unset
func (f Filter) BrightnessOr() float64 {
	if f.Brightness == 0 {
		return 1
	}
	return f.Brightness
}

// Transition tells the renderer how to animate into the profile
type Transition struct {
	Duration time.Duration
	Curve    motion.Curve
}

// Profile is one evasion tier. It is a plain comparable value; zero fields are
// unset. Move reports whether the profile repositions the control; Strategy
// is only meaningful when it does.
type Profile struct {
	Move       bool
	Strategy   placement.Strategy
	Transform  Transform
	Opacity    float64 // 0 = unset
	Filter     Filter
	Transition Transition
}

// HasPosition reports whether applying the profile repositions the control
func (p Profile) HasPosition() bool { return p.Move }

// HasVisuals reports whether any transform, opacity or filter is set
func (p Profile) HasVisuals() bool {
	return !p.Transform.IsZero() || p.Opacity != 0 || !p.Filter.IsZero()
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func move(st placement.Strategy) Profile { return Profile{Move: true, Strategy: st} }

func (p Profile) scale(s float64) Profile  { p.Transform.Scale = s; return p }
func (p Profile) rotate(d float64) Profile { p.Transform.Rotate = d; return p }
func (p Profile) opacity(o float64) Profile {
	p.Opacity = o
	return p
}
func (p Profile) blur(b float64) Profile       { p.Filter.Blur = b; return p }
func (p Profile) brightness(b float64) Profile { p.Filter.Brightness = b; return p }
func (p Profile) over(n int, c motion.Curve) Profile {
	p.Transition = Transition{Duration: ms(n), Curve: c}
	return p
}
