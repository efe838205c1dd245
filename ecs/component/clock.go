package component

// Clock is a singleton holding the simulated seconds per update.
type Clock struct {
	Delta float64
}

var ClockComponent = NewComponent[Clock]()
