package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type NPCTag struct{}

var NPCTagComponent = NewComponent[NPCTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// Name lets level data and scripts refer to entities.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Paused is a singleton present while the in-game menu is open.
type Paused struct{}

var PausedComponent = NewComponent[Paused]()
