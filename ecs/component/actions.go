package component

import "github.com/milk9111/foxtrot/input"

// PlayerActions holds the gameplay action state of a controllable entity and
// the bindings that feed it. A nil Map means the state is driven manually.
type PlayerActions struct {
	State input.PlayerActionState
	Map   *input.PlayerInputMap
}

var PlayerActionsComponent = NewComponent[PlayerActions]()

type CameraActions struct {
	State input.CameraActionState
	Map   *input.CameraInputMap
}

var CameraActionsComponent = NewComponent[CameraActions]()

type UIActions struct {
	State input.UIActionState
	Map   *input.UIInputMap
}

var UIActionsComponent = NewComponent[UIActions]()
