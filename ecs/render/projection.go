// Package render projects the 3D world onto the 2D screen.
package render

import (
	"math"

	"github.com/milk9111/foxtrot/common"
)

const nearPlane = 0.1

var worldUp = common.Vec3{Y: 1}

// Projector is a pinhole camera looking from Eye at Target.
type Projector struct {
	Eye    common.Vec3
	Width  float64
	Height float64

	forward common.Vec3
	right   common.Vec3
	up      common.Vec3
	focal   float64
}

// NewProjector builds a projector with a vertical field of view in radians.
func NewProjector(eye, target common.Vec3, fov, width, height float64) *Projector {
	f := target.Sub(eye).Normalize()
	if f == (common.Vec3{}) {
		f = common.Vec3{Z: 1}
	}
	r := worldUp.Cross(f).Normalize()
	if r == (common.Vec3{}) {
		r = common.Vec3{X: 1}
	}
	return &Projector{
		Eye:     eye,
		Width:   width,
		Height:  height,
		forward: f,
		right:   r,
		up:      f.Cross(r),
		focal:   (height / 2) / math.Tan(fov/2),
	}
}

// Depth is the distance of p along the view direction.
func (p *Projector) Depth(pt common.Vec3) float64 {
	return pt.Sub(p.Eye).Dot(p.forward)
}

// Project maps a world point to screen pixels. ok is false behind the near
// plane.
func (p *Projector) Project(pt common.Vec3) (x, y float64, ok bool) {
	d := pt.Sub(p.Eye)
	z := d.Dot(p.forward)
	if z < nearPlane {
		return 0, 0, false
	}
	x = p.Width/2 + d.Dot(p.right)/z*p.focal
	y = p.Height/2 - d.Dot(p.up)/z*p.focal
	return x, y, true
}

// Scale is the on-screen size in pixels of one world unit at depth z.
func (p *Projector) Scale(z float64) float64 {
	if z < nearPlane {
		return 0
	}
	return p.focal / z
}

// Facing reports whether a surface with the given normal at pt faces the eye.
func (p *Projector) Facing(pt, normal common.Vec3) bool {
	return p.Eye.Sub(pt).Dot(normal) > 0
}
