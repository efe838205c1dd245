package component

// Interactable lets the player start a dialog by pressing Interact within
// Radius.
type Interactable struct {
	Radius float64
	Dialog string
	Prompt string
}

var InteractableComponent = NewComponent[Interactable]()

// DialogSession is a singleton present while a dialog is open.
type DialogSession struct {
	Dialog  string
	Node    string
	Speaker uint64
	// Shown is the number of characters of the current line revealed so far.
	Shown   float64
	Choices []int
}

var DialogSessionComponent = NewComponent[DialogSession]()

// DialogFlags stores the facts dialog effects set; conditions read them.
type DialogFlags struct {
	Values map[string]int
}

func (f *DialogFlags) Set(name string, value int) {
	if f.Values == nil {
		f.Values = make(map[string]int)
	}
	f.Values[name] = value
}

var DialogFlagsComponent = NewComponent[DialogFlags]()
