package component

import (
	"image/color"

	"github.com/milk9111/foxtrot/common"
)

// ParticleEmitter spawns particles while its owner sprints on the ground.
type ParticleEmitter struct {
	Rate     float64
	Lifetime int
	Size     float64
	Color    color.RGBA
	Spread   float64
	accum    float64
}

// Accumulate returns how many particles are due after dt seconds.
func (p *ParticleEmitter) Accumulate(dt float64) int {
	p.accum += p.Rate * dt
	n := int(p.accum + 1e-9)
	p.accum -= float64(n)
	return n
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()

type Particle struct {
	Velocity common.Vec3
	Size     float64
	Color    color.RGBA
	Life     int
	MaxLife  int
}

var ParticleComponent = NewComponent[Particle]()
