package input

import "github.com/milk9111/foxtrot/common"

// idleMagnitude is the axis length below which input counts as absent.
const idleMagnitude = 1e-5

// MaxNormalized limits v to unit length. Vectors longer than one are
// normalized, vectors shorter than idleMagnitude report ok=false, anything in
// between is returned unchanged so partial analog input keeps its magnitude.
func MaxNormalized(v common.Vec2) (common.Vec2, bool) {
	lenSquared := v.LengthSquared()
	switch {
	case lenSquared > 1:
		return v.Normalize(), true
	case lenSquared < idleMagnitude*idleMagnitude:
		return common.Vec2{}, false
	default:
		return v, true
	}
}
