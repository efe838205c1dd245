package component

// ActionsFrozen is a reference count of active input freezes. Menus, dialogs
// and cutscenes each hold one freeze; input is suppressed while any is held.
type ActionsFrozen struct {
	count int
}

func (f *ActionsFrozen) Freeze() {
	f.count++
}

// Unfreeze releases one freeze. Releasing more than were taken is ignored.
func (f *ActionsFrozen) Unfreeze() {
	if f.count > 0 {
		f.count--
	}
}

func (f *ActionsFrozen) IsFrozen() bool {
	return f != nil && f.count > 0
}

func (f *ActionsFrozen) Count() int {
	if f == nil {
		return 0
	}
	return f.count
}

var ActionsFrozenComponent = NewComponent[ActionsFrozen]()
