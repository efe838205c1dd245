package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// BindingsFile overrides default bindings per namespace. Each action name maps
// to the full list of bindings that replaces its defaults.
type BindingsFile struct {
	Player map[string][]string `yaml:"player"`
	Camera map[string][]string `yaml:"camera"`
	UI     map[string][]string `yaml:"ui"`
}

// Maps bundles the three namespaces.
type Maps struct {
	Player *PlayerInputMap
	Camera *CameraInputMap
	UI     *UIInputMap
}

func DefaultMaps() Maps {
	return Maps{
		Player: DefaultPlayerInputMap(),
		Camera: DefaultCameraInputMap(),
		UI:     DefaultUIInputMap(),
	}
}

var gamepadButtonNames = map[string]ebiten.StandardGamepadButton{
	"right_bottom":  ebiten.StandardGamepadButtonRightBottom,
	"right_right":   ebiten.StandardGamepadButtonRightRight,
	"right_left":    ebiten.StandardGamepadButtonRightLeft,
	"right_top":     ebiten.StandardGamepadButtonRightTop,
	"front_left":    ebiten.StandardGamepadButtonFrontTopLeft,
	"front_right":   ebiten.StandardGamepadButtonFrontTopRight,
	"trigger_left":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"trigger_right": ebiten.StandardGamepadButtonFrontBottomRight,
	"select":        ebiten.StandardGamepadButtonCenterLeft,
	"start":         ebiten.StandardGamepadButtonCenterRight,
	"left_stick":    ebiten.StandardGamepadButtonLeftStick,
	"right_stick":   ebiten.StandardGamepadButtonRightStick,
}

var mouseButtonNames = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

// ParseBinding reads the textual binding form used in bindings files:
// key:<Name>, mouse:<left|right|middle>, pad:<button>, dpad:wasd, dpad:arrows,
// stick:<left|right>, mouse_motion, wheel_y.
func ParseBinding(s string) (Binding, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch kind {
	case "key":
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(arg)); err != nil {
			return nil, fmt.Errorf("input: parse binding %q: %w", s, err)
		}
		return KeyBinding{Key: k}, nil
	case "mouse":
		b, ok := mouseButtonNames[arg]
		if !ok {
			return nil, fmt.Errorf("input: parse binding %q: unknown mouse button", s)
		}
		return MouseButtonBinding{Button: b}, nil
	case "pad":
		b, ok := gamepadButtonNames[arg]
		if !ok {
			return nil, fmt.Errorf("input: parse binding %q: unknown gamepad button", s)
		}
		return GamepadButtonBinding{Button: b}, nil
	case "dpad":
		switch arg {
		case "wasd":
			return WASD(), nil
		case "arrows":
			return ArrowKeys(), nil
		}
		return nil, fmt.Errorf("input: parse binding %q: unknown dpad layout", s)
	case "stick":
		switch arg {
		case "left":
			return LeftStick(), nil
		case "right":
			return RightStick(), nil
		}
		return nil, fmt.Errorf("input: parse binding %q: unknown stick", s)
	case "mouse_motion":
		return MouseMotion{}, nil
	case "wheel_y":
		return MouseWheelY{}, nil
	default:
		return nil, fmt.Errorf("input: parse binding %q: unknown kind", s)
	}
}

// LoadBindings reads a bindings file from disk and applies it over the defaults.
func LoadBindings(path string) (Maps, error) {
	maps := DefaultMaps()
	if path == "" {
		return maps, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return maps, fmt.Errorf("input: read bindings %s: %w", path, err)
	}
	var file BindingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return maps, fmt.Errorf("input: unmarshal bindings %s: %w", path, err)
	}
	if err := file.ApplyTo(maps); err != nil {
		return maps, err
	}
	return maps, nil
}

// ApplyTo replaces the bindings named in f.
func (f BindingsFile) ApplyTo(m Maps) error {
	if err := applyNamespace(m.Player, f.Player, playerActionNames); err != nil {
		return err
	}
	cameraNames := map[CameraAction]string{Orbit: Orbit.String(), Zoom: Zoom.String()}
	if err := applyNamespace(m.Camera, f.Camera, cameraNames); err != nil {
		return err
	}
	uiNames := map[UIAction]string{TogglePause: TogglePause.String()}
	return applyNamespace(m.UI, f.UI, uiNames)
}

func applyNamespace[A comparable](m *InputMap[A], overrides map[string][]string, names map[A]string) error {
	if m == nil {
		return nil
	}
	byName := make(map[string]A, len(names))
	for a, name := range names {
		byName[name] = a
	}
	for name, raw := range overrides {
		a, ok := byName[name]
		if !ok {
			return fmt.Errorf("input: unknown action %q", name)
		}
		bindings := make([]Binding, 0, len(raw))
		for _, r := range raw {
			b, err := ParseBinding(r)
			if err != nil {
				return err
			}
			bindings = append(bindings, b)
		}
		m.Replace(a, bindings...)
	}
	return nil
}
