package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/foxtrot/common"
)

func TestProjectCenterAndSides(t *testing.T) {
	p := NewProjector(common.Vec3{Z: -10}, common.Vec3{}, math.Pi/2, 200, 100)

	tests := []struct {
		name   string
		pt     common.Vec3
		wantX  float64
		wantY  float64
		wantOK bool
	}{
		{"target_is_center", common.Vec3{}, 100, 50, true},
		{"right_is_plus_x", common.Vec3{X: 10}, 150, 50, true},
		{"up_is_minus_screen_y", common.Vec3{Y: 10}, 100, 0, true},
		{"behind_camera", common.Vec3{Z: -20}, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := p.Project(tc.pt)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v", tc.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(x-tc.wantX) > 1e-9 || math.Abs(y-tc.wantY) > 1e-9 {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tc.wantX, tc.wantY, x, y)
			}
		})
	}
}

func TestFacing(t *testing.T) {
	p := NewProjector(common.Vec3{Z: -10}, common.Vec3{}, 1, 100, 100)
	if !p.Facing(common.Vec3{}, common.Vec3{Z: -1}) {
		t.Fatalf("a face pointing at the camera should be visible")
	}
	if p.Facing(common.Vec3{}, common.Vec3{Z: 1}) {
		t.Fatalf("a face pointing away should be culled")
	}
}

func TestShadeAndFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 200}
	if got := Shade(c, 2); got.R != 255 || got.G != 200 || got.B != 100 || got.A != 200 {
		t.Fatalf("unexpected shade %+v", got)
	}
	if got := Fade(c, 0.5); got.A != 100 || got.R != 200 {
		t.Fatalf("unexpected fade %+v", got)
	}
}
