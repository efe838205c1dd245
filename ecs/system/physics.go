package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

// PhysicsSystem resolves horizontal movement in a Chipmunk2D space laid over
// the XZ plane. Height is owned by the character controller.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body, used when a level is unloaded.
func (ps *PhysicsSystem) Reset() {
	ps.space = newSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	ps.space.Step(FrameDelta(w))

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if info, exists := ps.entities[e]; exists {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	center := cp.Vector{X: transform.Position.X, Y: transform.Position.Z}
	radius := bodyComp.Radius
	width, depth := bodyComp.Width, bodyComp.Depth
	if radius <= 0 && (width <= 0 || depth <= 0) {
		radius = 0.5
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - depth/2, R: center.X + width/2, T: center.Y + depth/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Characters never spin; facing is the controller's yaw.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(center)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, depth, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeCharacter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

// syncWorldBounds walls the level in once per bounds entity.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	b, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || b.MaxX <= b.MinX || b.MaxZ <= b.MinZ {
		return
	}

	segments := [][2]cp.Vector{
		{{X: b.MinX, Y: b.MinZ}, {X: b.MaxX, Y: b.MinZ}},
		{{X: b.MinX, Y: b.MaxZ}, {X: b.MaxX, Y: b.MaxZ}},
		{{X: b.MinX, Y: b.MinZ}, {X: b.MinX, Y: b.MaxZ}},
		{{X: b.MaxX, Y: b.MinZ}, {X: b.MaxX, Y: b.MaxZ}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 0.1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil || bodyComp.Static {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		pos := bodyComp.Body.Position()
		transform.Position.X = pos.X
		transform.Position.Z = pos.Y

		if ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok && ctrl.Walk != nil {
			v := bodyComp.Body.Velocity()
			ctrl.Walk.RunningVelocity = common.Vec2{X: v.X, Y: v.Y}
		}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
