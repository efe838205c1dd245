package component

// Persistent entities survive world rebuilds according to their flags. Only
// the first entity per ID is kept.
type Persistent struct {
	ID                string
	KeepOnLevelChange bool
	KeepOnReload      bool
}

var PersistentComponent = NewComponent[Persistent]()
