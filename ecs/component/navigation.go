package component

import (
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/navmesh"
)

// NavMesh is the singleton holding the baked walkable grid of the level.
type NavMesh struct {
	Mesh *navmesh.Mesh
}

var NavMeshComponent = NewComponent[NavMesh]()

// Follower walks a character toward the target entity along nav mesh paths.
// TargetName is resolved against Name components when Target is stale.
type Follower struct {
	Target          uint64
	TargetName      string
	Speed           float64
	StoppingDist    float64
	FollowRange     float64
	RepathFrames    int
	FrameCounter    int
	Path            []common.Vec2
	LastTargetCellX int
	LastTargetCellZ int
}

var FollowerComponent = NewComponent[Follower]()
