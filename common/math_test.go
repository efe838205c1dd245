package common

import (
	"math"
	"testing"
)

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero", Vec2{}, Vec2{}},
		{"axis", Vec2{X: 3}, Vec2{X: 1}},
		{"diagonal", Vec2{X: 3, Y: 4}, Vec2{X: 0.6, Y: 0.8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{X: 1}.Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Fatalf("expected (0,1), got %+v", got)
	}
}

func TestMoveToward(t *testing.T) {
	if got := MoveToward(0, 10, 3); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := MoveToward(9, 10, 3); got != 10 {
		t.Fatalf("expected to land on target, got %v", got)
	}
	if got := MoveToward(0, -10, 4); got != -4 {
		t.Fatalf("expected -4, got %v", got)
	}
}

func TestWrapAngle(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 3 * math.Pi, -3 * math.Pi, 7} {
		got := WrapAngle(a)
		if got <= -math.Pi || got > math.Pi {
			t.Fatalf("WrapAngle(%v) = %v out of range", a, got)
		}
		if math.Abs(math.Sin(got)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(got)-math.Cos(a)) > 1e-9 {
			t.Fatalf("WrapAngle(%v) = %v changed direction", a, got)
		}
	}
}

func TestYawBasis(t *testing.T) {
	for _, yaw := range []float64{0, 0.7, -2.1, math.Pi} {
		f := YawForward(yaw)
		r := YawRight(yaw)
		if math.Abs(f.Dot(r)) > 1e-9 {
			t.Fatalf("yaw %v: forward and right not orthogonal", yaw)
		}
		if got := YawOf(f); math.Abs(WrapAngle(got-yaw)) > 1e-9 {
			t.Fatalf("yaw %v: YawOf(forward) = %v", yaw, got)
		}
	}
	if r := YawRight(0); math.Abs(r.X-1) > 1e-9 {
		t.Fatalf("yaw 0 should have +X on the right, got %+v", r)
	}
}
