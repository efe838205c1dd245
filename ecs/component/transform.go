package component

import "github.com/milk9111/foxtrot/common"

// Transform places an entity in the world. Y is up; Yaw rotates around Y,
// zero facing +Z.
type Transform struct {
	Position common.Vec3
	Yaw      float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
