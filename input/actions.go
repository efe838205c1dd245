package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// PlayerAction is a gameplay action of the controlled character.
type PlayerAction int

const (
	Move PlayerAction = iota
	Sprint
	Jump
	Interact
	SpeedUpDialog
	NumberedChoice1
	NumberedChoice2
	NumberedChoice3
	NumberedChoice4
	NumberedChoice5
	NumberedChoice6
	NumberedChoice7
	NumberedChoice8
	NumberedChoice9
	NumberedChoice0
)

var playerActionNames = map[PlayerAction]string{
	Move:            "move",
	Sprint:          "sprint",
	Jump:            "jump",
	Interact:        "interact",
	SpeedUpDialog:   "speed_up_dialog",
	NumberedChoice1: "numbered_choice_1",
	NumberedChoice2: "numbered_choice_2",
	NumberedChoice3: "numbered_choice_3",
	NumberedChoice4: "numbered_choice_4",
	NumberedChoice5: "numbered_choice_5",
	NumberedChoice6: "numbered_choice_6",
	NumberedChoice7: "numbered_choice_7",
	NumberedChoice8: "numbered_choice_8",
	NumberedChoice9: "numbered_choice_9",
	NumberedChoice0: "numbered_choice_0",
}

func (a PlayerAction) String() string {
	if name, ok := playerActionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("player_action(%d)", int(a))
}

// NumberedChoices lists the choice actions in on-screen order: 1..9 then 0.
var NumberedChoices = []PlayerAction{
	NumberedChoice1, NumberedChoice2, NumberedChoice3, NumberedChoice4, NumberedChoice5,
	NumberedChoice6, NumberedChoice7, NumberedChoice8, NumberedChoice9, NumberedChoice0,
}

// CameraAction drives the follow camera.
type CameraAction int

const (
	Orbit CameraAction = iota
	Zoom
)

func (a CameraAction) String() string {
	switch a {
	case Orbit:
		return "orbit"
	case Zoom:
		return "zoom"
	default:
		return fmt.Sprintf("camera_action(%d)", int(a))
	}
}

// UIAction is handled regardless of gameplay freezes.
type UIAction int

const (
	TogglePause UIAction = iota
)

func (a UIAction) String() string {
	if a == TogglePause {
		return "toggle_pause"
	}
	return fmt.Sprintf("ui_action(%d)", int(a))
}

type (
	PlayerActionState = ActionState[PlayerAction]
	CameraActionState = ActionState[CameraAction]
	UIActionState     = ActionState[UIAction]

	PlayerInputMap = InputMap[PlayerAction]
	CameraInputMap = InputMap[CameraAction]
	UIInputMap     = InputMap[UIAction]
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9, ebiten.KeyDigit0,
}

// DefaultPlayerInputMap binds keyboard and the standard gamepad.
func DefaultPlayerInputMap() *PlayerInputMap {
	m := NewInputMap[PlayerAction]().
		Insert(Jump, KeyBinding{Key: ebiten.KeySpace}).
		Insert(Sprint, KeyBinding{Key: ebiten.KeyShiftLeft}).
		Insert(Interact, KeyBinding{Key: ebiten.KeyE}).
		Insert(SpeedUpDialog, KeyBinding{Key: ebiten.KeySpace})
	for i, choice := range NumberedChoices {
		m.Insert(choice, KeyBinding{Key: digitKeys[i]})
	}
	m.Insert(Move, WASD())

	m.Insert(Move, LeftStick()).
		Insert(Jump, GamepadButtonBinding{Button: ebiten.StandardGamepadButtonRightBottom}).
		Insert(SpeedUpDialog, GamepadButtonBinding{Button: ebiten.StandardGamepadButtonRightBottom}).
		Insert(Interact, GamepadButtonBinding{Button: ebiten.StandardGamepadButtonRightLeft}).
		Insert(Sprint, GamepadButtonBinding{Button: ebiten.StandardGamepadButtonLeftStick})
	return m
}

// DefaultCameraInputMap binds mouse motion to orbit and the wheel to zoom.
func DefaultCameraInputMap() *CameraInputMap {
	return NewInputMap[CameraAction]().
		Insert(Orbit, MouseMotion{}).
		Insert(Zoom, MouseWheelY{})
}

// DefaultUIInputMap binds Escape to pause.
func DefaultUIInputMap() *UIInputMap {
	return NewInputMap[UIAction]().
		Insert(TogglePause, KeyBinding{Key: ebiten.KeyEscape}).
		Insert(TogglePause, GamepadButtonBinding{Button: ebiten.StandardGamepadButtonCenterRight})
}
