package component

// LevelChangeRequest asks the persistence system to load a different level.
// Systems only emit the request; the persistence system owns world rebuilds.
type LevelChangeRequest struct {
	TargetLevel string
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()

// SaveRequest asks for the current game to be written to the save store.
type SaveRequest struct{}

var SaveRequestComponent = NewComponent[SaveRequest]()

// LoadSaveRequest restores a save by id; an empty ID loads the newest.
type LoadSaveRequest struct {
	ID string
}

var LoadSaveRequestComponent = NewComponent[LoadSaveRequest]()
