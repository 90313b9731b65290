package celebration

import (
	"math"
	"math/rand"
)

// Kind distinguishes the two particle families
type Kind int

const (
	Emblem Kind = iota // large, slow, drifting heart
	Glint              // small fast star with a finite life
)

func (k Kind) String() string {
	if k == Glint {
		return "glint"
	}
	return "emblem"
}

// Particle is a single celebration particle. Lengths and speeds are in view
// units; Scale in Config converts the pixel-tuned constants.
type Particle struct {
	Kind     Kind
	X, Y     float64 // Position
	VX, VY   float64 // Velocity per tick
	Size     float64
	Rotation float64
	Spin     float64 // Rotation per tick
	Alpha    float64
	Life     float64 // Glint only, 1 -> 0
	Hue      float64 // Emblem only, degrees

	wobble      float64
	wobbleSpeed float64
	phase       float64 // Noise offset
}

// Physics constants, in pixels per tick at Scale 1
const (
	emblemFadeLine  = 0.4  // fading starts above this fraction of the height
	emblemFadeStep  = 0.01 // alpha lost per tick once fading
	emblemWobble    = 0.8
	glintLifeStep   = 0.015
	spawnMargin     = 20.0 // particles start this far below the bottom edge
	escapeMargin    = 50.0 // and die this far above the top one
	phaseSpread     = 1000.0
	emblemHueBase   = 330.0
	emblemHueSpread = 40.0
)

func newEmblem(rng *rand.Rand, w, h, scale float64) *Particle {
	return &Particle{
		Kind:        Emblem,
		X:           rng.Float64() * w,
		Y:           h + spawnMargin*scale,
		Size:        (rng.Float64()*30 + 15) * scale,
		VY:          -(rng.Float64()*4 + 2.5) * scale,
		VX:          (rng.Float64() - 0.5) * 3 * scale,
		Alpha:       1,
		Rotation:    rng.Float64() * math.Pi * 2,
		Spin:        (rng.Float64() - 0.5) * 0.2,
		Hue:         rng.Float64()*emblemHueSpread + emblemHueBase,
		wobbleSpeed: rng.Float64()*0.06 + 0.02,
		phase:       rng.Float64() * phaseSpread,
	}
}

func newGlint(rng *rand.Rand, w, h, scale float64) *Particle {
	return &Particle{
		Kind:     Glint,
		X:        rng.Float64() * w,
		Y:        h + spawnMargin*scale,
		Size:     (rng.Float64()*8 + 4) * scale,
		VY:       -(rng.Float64()*3 + 2) * scale,
		VX:       (rng.Float64() - 0.5) * 2 * scale,
		Alpha:    1,
		Life:     1,
		Rotation: rng.Float64() * math.Pi * 2,
		Spin:     (rng.Float64() - 0.5) * 0.3,
		phase:    rng.Float64() * phaseSpread,
	}
}

// update advances the particle one tick in a view of height h and reports
// whether it is still alive
func (p *Particle) update(h, scale float64) bool {
	p.Y += p.VY
	p.Rotation += p.Spin

	if p.Kind == Glint {
		p.X += p.VX
		p.Life -= glintLifeStep
		p.Alpha = p.Life
		return p.Life > 0 && p.Y > -escapeMargin*scale
	}

	p.X += p.VX + math.Sin(p.wobble)*emblemWobble*scale
	p.wobble += p.wobbleSpeed
	if p.Y < h*emblemFadeLine {
		p.Alpha -= emblemFadeStep
	}
	return p.Alpha > 0 && p.Y > -escapeMargin*scale
}
