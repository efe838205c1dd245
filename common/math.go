package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveToward steps current toward target by at most maxDelta.
func MoveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// WrapAngle maps an angle in radians to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Vec2 is a 2D vector. Ground-plane code uses X for world X and Y for world Z.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64        { return math.Sqrt(v.LengthSquared()) }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// ClampLength scales v down so its length does not exceed max.
func (v Vec2) ClampLength(max float64) Vec2 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Vec3 is a world-space position. Y is up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Ground drops the height component.
func (v Vec3) Ground() Vec2 { return Vec2{X: v.X, Y: v.Z} }

// YawForward is the ground direction an entity with the given yaw faces.
// Yaw zero faces +Z; positive yaw turns toward +X.
func YawForward(yaw float64) Vec2 {
	s, c := math.Sincos(yaw)
	return Vec2{X: s, Y: c}
}

// YawRight is the ground direction to the right of YawForward.
func YawRight(yaw float64) Vec2 {
	s, c := math.Sincos(yaw)
	return Vec2{X: c, Y: -s}
}

// YawOf is the yaw that faces dir.
func YawOf(dir Vec2) float64 {
	return math.Atan2(dir.X, dir.Y)
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{X: v.Y*o.Z - v.Z*o.Y, Y: v.Z*o.X - v.X*o.Z, Z: v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}
