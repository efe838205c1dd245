package component

// LevelLoaded is the singleton describing the level currently in the world.
// Sequence increases on every rebuild.
type LevelLoaded struct {
	Name     string
	Sequence uint64
}

var LevelLoadedComponent = NewComponent[LevelLoaded]()
