package system

import (
	"math"
	"math/rand"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

const particleGravity = 4.0

// ParticleSystem kicks up dust behind running characters and moves live
// particles. Expiry is left to TTLSystem.
type ParticleSystem struct {
	rng *rand.Rand
}

func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{rng: rand.New(rand.NewSource(seed))}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := FrameDelta(w)

	ecs.ForEach3(w, component.ParticleEmitterComponent.Kind(), component.CharacterControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, em *component.ParticleEmitter, ctrl *component.CharacterController, t *component.Transform) {
		if ctrl.Walk == nil || ctrl.Airborne {
			return
		}
		speed := ctrl.Walk.RunningVelocity.Length()
		if speed <= runningThreshold {
			return
		}
		back := ctrl.Walk.RunningVelocity.Normalize().Scale(-1)
		for n := em.Accumulate(dt); n > 0; n-- {
			s.spawn(w, em, t.Position, back)
		}
	})

	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Particle, t *component.Transform) {
		t.Position = t.Position.Add(p.Velocity.Scale(dt))
		p.Velocity.Y -= particleGravity * dt
		if t.Position.Y < 0 {
			t.Position.Y = 0
			p.Velocity.Y = 0
		}
		if p.Life > 0 {
			p.Life--
		}
	})
}

func (s *ParticleSystem) spawn(w *ecs.World, em *component.ParticleEmitter, at common.Vec3, back common.Vec2) {
	angle := (s.rng.Float64()*2 - 1) * em.Spread
	dir := back.Rotate(angle).Scale(0.5 + s.rng.Float64())
	life := em.Lifetime
	if life <= 0 {
		life = 30
	}

	p := ecs.CreateEntity(w)
	if err := ecs.Add(w, p, component.TransformComponent.Kind(), &component.Transform{Position: at, Scale: 1}); err != nil {
		panic("particle system: add transform: " + err.Error())
	}
	if err := ecs.Add(w, p, component.ParticleComponent.Kind(), &component.Particle{
		Velocity: common.Vec3{X: dir.X, Y: 1 + s.rng.Float64(), Z: dir.Y},
		Size:     em.Size * (0.7 + 0.6*s.rng.Float64()),
		Color:    em.Color,
		Life:     life,
		MaxLife:  life,
	}); err != nil {
		panic("particle system: add particle: " + err.Error())
	}
	if err := ecs.Add(w, p, component.TTLComponent.Kind(), &component.TTL{Frames: life}); err != nil {
		panic("particle system: add ttl: " + err.Error())
	}
}

// ParticleAlpha is the fade-out of a particle over its life.
func ParticleAlpha(p *component.Particle) float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, float64(p.Life)/float64(p.MaxLife))
}
