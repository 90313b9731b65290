package scene

import (
	"time"

	"github.com/olivierh59500/inevitable-go/internal/evasion"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/motion"
)

// Look is the No button as it should appear at an instant
type Look struct {
	Rect       geom.Rect // unscaled box at the animated position
	Scale      float64
	Rotate     float64 // degrees
	Opacity    float64
	Blur       float64
	Brightness float64
}

// animator eases the rendered look toward the controller's latest target
type animator struct {
	rev    uint64
	target geom.Point
	pos    *motion.Tween

	scale, rotate, opacity, blur, brightness motion.Scalar
}

func newAnimator(home geom.Point) *animator {
	return &animator{
		target:     home,
		pos:        motion.Fixed(home),
		scale:      motion.NewScalar(1),
		opacity:    motion.NewScalar(1),
		brightness: motion.NewScalar(1),
	}
}

func (a *animator) update(now time.Time, v evasion.VisualState, target geom.Point) {
	if v.Revision == a.rev {
		if target != a.target {
			// Layout change without a new behavior: jump
			a.target = target
			a.pos = motion.Fixed(target)
		}
		return
	}
	a.rev = v.Revision
	a.target = target

	d, c := v.Transition.Duration, v.Transition.Curve
	a.pos.Retarget(now, append(v.Hops, target), d, c)
	a.scale.Retarget(now, v.Transform.ScaleOr(), d, c)
	a.rotate.Retarget(now, v.Transform.Rotate, d, c)
	a.opacity.Retarget(now, opacityOr(v.Opacity), d, c)
	a.blur.Retarget(now, v.Filter.Blur, d, c)
	a.brightness.Retarget(now, v.Filter.BrightnessOr(), d, c)
}

func opacityOr(o float64) float64 {
	if o == 0 {
		return 1
	}
	return o
}

// Box is the area the button covers on screen: Rect scaled about its center
func (l Look) Box() geom.Rect {
	if l.Scale == 1 {
		return l.Rect
	}
	return geom.CenteredRect(l.Rect.Center(), geom.Size{W: l.Rect.W * l.Scale, H: l.Rect.H * l.Scale})
}

func (a *animator) at(now time.Time, size geom.Size) Look {
	return Look{
		Rect:       geom.RectAt(a.pos.At(now), size),
		Scale:      a.scale.At(now),
		Rotate:     a.rotate.At(now),
		Opacity:    geom.Clamp(a.opacity.At(now), 0, 1),
		Blur:       a.blur.At(now),
		Brightness: a.brightness.At(now),
	}
}

// NoLook returns the No button's animated appearance for this frame
func (s *Scene) NoLook() Look {
	now := s.sched.Clock().Now()
	if s.anim == nil {
		s.anim = newAnimator(s.no.Position())
	}
	s.anim.update(now, s.no.Visual(), s.no.Position())
	return s.anim.at(now, s.no.Size())
}
