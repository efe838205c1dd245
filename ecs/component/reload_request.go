package component

// ReloadRequest is a one-shot marker asking the persistence system to reload
// the current level. KeepPlayer puts the player back where it stood.
type ReloadRequest struct {
	KeepPlayer bool
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
