package system

import (
	"math"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

const (
	defaultCameraSensitivity = 0.005
	defaultZoomSpeed         = 1.0
	defaultCameraSmoothness  = 0.15
)

// CameraSystem orbits and zooms the camera from camera actions and eases its
// focus toward the target.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CameraTagComponent.Kind(), component.CameraComponent.Kind(), func(e ecs.Entity, _ *component.CameraTag, cam *component.Camera) {
		if actions, ok := ecs.Get(w, e, component.CameraActionsComponent.Kind()); ok {
			applyCameraActions(cam, &actions.State)
		}

		target, ok := findByName(w, cam.Target)
		if !ok {
			return
		}
		t, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}

		smooth := cam.Smoothness
		if smooth <= 0 {
			smooth = defaultCameraSmoothness
		}
		cam.FocusX = common.Lerp(cam.FocusX, t.Position.X, smooth)
		cam.FocusY = common.Lerp(cam.FocusY, t.Position.Y+cam.FocusHeight, smooth)
		cam.FocusZ = common.Lerp(cam.FocusZ, t.Position.Z, smooth)
	})
}

func applyCameraActions(cam *component.Camera, state *input.CameraActionState) {
	sens := cam.Sensitivity
	if sens <= 0 {
		sens = defaultCameraSensitivity
	}
	orbit := state.AxisPair(input.Orbit)
	cam.Yaw = common.WrapAngle(cam.Yaw + orbit.X*sens)
	cam.Pitch += orbit.Y * sens
	if cam.MaxPitch > cam.MinPitch {
		cam.Pitch = common.Clamp(cam.Pitch, cam.MinPitch, cam.MaxPitch)
	}

	zoom := cam.ZoomSpeed
	if zoom <= 0 {
		zoom = defaultZoomSpeed
	}
	cam.Distance -= state.Value(input.Zoom) * zoom
	if cam.MaxDistance > cam.MinDistance {
		cam.Distance = common.Clamp(cam.Distance, cam.MinDistance, cam.MaxDistance)
	}
}

// CameraEye is the world position of the camera.
func CameraEye(cam *component.Camera) common.Vec3 {
	back := common.YawForward(cam.Yaw).Scale(-cam.Distance * math.Cos(cam.Pitch))
	return common.Vec3{
		X: cam.FocusX + back.X,
		Y: cam.FocusY + cam.Distance*math.Sin(cam.Pitch),
		Z: cam.FocusZ + back.Y,
	}
}
