package component

// LevelBounds stores the horizontal extent of the current level.
type LevelBounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (b *LevelBounds) Clamp(x, z, margin float64) (float64, float64) {
	if x < b.MinX+margin {
		x = b.MinX + margin
	}
	if x > b.MaxX-margin {
		x = b.MaxX - margin
	}
	if z < b.MinZ+margin {
		z = b.MinZ + margin
	}
	if z > b.MaxZ-margin {
		z = b.MaxZ - margin
	}
	return x, z
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
