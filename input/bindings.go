package input

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/common"
)

// stickDeadzone filters resting analog sticks.
const stickDeadzone = 0.2

// Sample is what a binding reads from its device in one frame.
type Sample struct {
	Pressed bool
	Value   float64
	Axis    common.Vec2
}

// Binding maps one physical input to an action sample.
type Binding interface {
	Sample(src Source) Sample
	String() string
}

type KeyBinding struct {
	Key ebiten.Key
}

func (b KeyBinding) Sample(src Source) Sample {
	return buttonSample(src.KeyPressed(b.Key))
}

func (b KeyBinding) String() string { return "key:" + b.Key.String() }

type MouseButtonBinding struct {
	Button ebiten.MouseButton
}

func (b MouseButtonBinding) Sample(src Source) Sample {
	return buttonSample(src.MouseButtonPressed(b.Button))
}

func (b MouseButtonBinding) String() string { return fmt.Sprintf("mouse:%d", int(b.Button)) }

type GamepadButtonBinding struct {
	Button ebiten.StandardGamepadButton
}

func (b GamepadButtonBinding) Sample(src Source) Sample {
	return buttonSample(src.GamepadButtonPressed(b.Button))
}

func (b GamepadButtonBinding) String() string {
	for name, btn := range gamepadButtonNames {
		if btn == b.Button {
			return "pad:" + name
		}
	}
	return fmt.Sprintf("pad:%d", int(b.Button))
}

// VirtualDPad turns four keys into a dual axis. Up is +Y.
type VirtualDPad struct {
	Up, Down, Left, Right ebiten.Key
}

func WASD() VirtualDPad {
	return VirtualDPad{Up: ebiten.KeyW, Down: ebiten.KeyS, Left: ebiten.KeyA, Right: ebiten.KeyD}
}

func ArrowKeys() VirtualDPad {
	return VirtualDPad{Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown, Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight}
}

func (b VirtualDPad) Sample(src Source) Sample {
	var axis common.Vec2
	if src.KeyPressed(b.Up) {
		axis.Y++
	}
	if src.KeyPressed(b.Down) {
		axis.Y--
	}
	if src.KeyPressed(b.Right) {
		axis.X++
	}
	if src.KeyPressed(b.Left) {
		axis.X--
	}
	return Sample{Pressed: !axis.IsZero(), Axis: axis}
}

func (b VirtualDPad) String() string {
	return fmt.Sprintf("dpad:%s,%s,%s,%s", b.Up, b.Down, b.Left, b.Right)
}

// GamepadStick reads a standard stick as a dual axis with up as +Y.
type GamepadStick struct {
	Horizontal ebiten.StandardGamepadAxis
	Vertical   ebiten.StandardGamepadAxis
}

func LeftStick() GamepadStick {
	return GamepadStick{Horizontal: ebiten.StandardGamepadAxisLeftStickHorizontal, Vertical: ebiten.StandardGamepadAxisLeftStickVertical}
}

func RightStick() GamepadStick {
	return GamepadStick{Horizontal: ebiten.StandardGamepadAxisRightStickHorizontal, Vertical: ebiten.StandardGamepadAxisRightStickVertical}
}

func (b GamepadStick) Sample(src Source) Sample {
	axis := common.Vec2{X: src.GamepadAxis(b.Horizontal), Y: -src.GamepadAxis(b.Vertical)}
	if axis.Length() <= stickDeadzone {
		return Sample{}
	}
	return Sample{Pressed: true, Axis: axis}
}

func (b GamepadStick) String() string {
	if b == RightStick() {
		return "stick:right"
	}
	return "stick:left"
}

// MouseMotion reports the cursor delta as a dual axis.
type MouseMotion struct{}

func (MouseMotion) Sample(src Source) Sample {
	d := src.CursorDelta()
	return Sample{Pressed: !d.IsZero(), Axis: d}
}

func (MouseMotion) String() string { return "mouse_motion" }

// MouseWheelY reports vertical scrolling as a single axis.
type MouseWheelY struct{}

func (MouseWheelY) Sample(src Source) Sample {
	v := src.WheelDelta().Y
	return Sample{Pressed: v != 0, Value: v}
}

func (MouseWheelY) String() string { return "wheel_y" }

func buttonSample(pressed bool) Sample {
	if pressed {
		return Sample{Pressed: true, Value: 1}
	}
	return Sample{}
}

// InputMap binds actions of one namespace to any number of physical inputs.
type InputMap[A comparable] struct {
	bindings map[A][]Binding
	order    []A
}

func NewInputMap[A comparable]() *InputMap[A] {
	return &InputMap[A]{bindings: make(map[A][]Binding)}
}

// Insert adds a binding and returns the map for chaining.
func (m *InputMap[A]) Insert(a A, b Binding) *InputMap[A] {
	if b == nil {
		return m
	}
	if _, ok := m.bindings[a]; !ok {
		m.order = append(m.order, a)
	}
	m.bindings[a] = append(m.bindings[a], b)
	return m
}

// Replace drops the existing bindings of a before inserting bs.
func (m *InputMap[A]) Replace(a A, bs ...Binding) *InputMap[A] {
	if _, ok := m.bindings[a]; ok {
		m.bindings[a] = nil
	}
	for _, b := range bs {
		m.Insert(a, b)
	}
	return m
}

func (m *InputMap[A]) Bindings(a A) []Binding {
	return m.bindings[a]
}

// Actions lists the bound actions in insertion order.
func (m *InputMap[A]) Actions() []A {
	return m.order
}

// Sample merges every binding of a: pressed if any is pressed, axes summed,
// and the strongest single-axis value wins.
func (m *InputMap[A]) Sample(src Source, a A) Sample {
	var out Sample
	for _, b := range m.bindings[a] {
		s := b.Sample(src)
		out.Pressed = out.Pressed || s.Pressed
		out.Axis = out.Axis.Add(s.Axis)
		if math.Abs(s.Value) > math.Abs(out.Value) {
			out.Value = s.Value
		}
	}
	return out
}

// Update refreshes every bound action of state from src.
func (m *InputMap[A]) Update(src Source, state *ActionState[A]) {
	if m == nil || src == nil || state == nil {
		return
	}
	for _, a := range m.order {
		state.Apply(a, m.Sample(src, a))
	}
}
