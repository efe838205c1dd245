package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// space lies in the XZ plane: cp X is world X, cp Y is world Z.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Depth      float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Obstacle marks static level geometry. Height is the vertical extent used
// for drawing and nav baking.
type Obstacle struct {
	Height float64
}

var ObstacleComponent = NewComponent[Obstacle]()
