package component

import "image/color"

// Model describes how a character or prop is drawn.
type Model struct {
	Shape  string
	Color  color.RGBA
	Height float64
	Radius float64
}

var ModelComponent = NewComponent[Model]()
