package system

import (
	"math"

	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"go.uber.org/zap"
)

const (
	runningThreshold = 10.0
	walkingThreshold = 0.01

	// runAnimationScale maps running speed to clip playback rate.
	runAnimationScale = 7.0

	groundFade = 0.2
	walkFade   = 0.1
)

// ClassifyAnimation picks the locomotion state for a horizontal speed.
// Thresholds are exclusive: exactly 10 is still walking.
func ClassifyAnimation(speed float64, airborne bool) component.AnimationState {
	switch {
	case airborne:
		return component.AirborneState()
	case speed > runningThreshold:
		return component.RunningState(speed)
	case speed > walkingThreshold:
		return component.WalkingState(speed)
	default:
		return component.StandingState()
	}
}

// AnimationStateSystem keeps each character's animation player in step with
// its controller. Clips only restart when the locomotion kind changes.
type AnimationStateSystem struct{}

func NewAnimationStateSystem() *AnimationStateSystem {
	return &AnimationStateSystem{}
}

func (s *AnimationStateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Query(w,
		component.AnimatingStateComponent.Kind(),
		component.CharacterControllerComponent.Kind(),
		component.CharacterAnimationsComponent.Kind(),
		component.AnimationPlayerLinkComponent.Kind(),
	) {
		animating, _ := ecs.Get(w, e, component.AnimatingStateComponent.Kind())
		ctrl, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
		names, _ := ecs.Get(w, e, component.CharacterAnimationsComponent.Kind())
		link, _ := ecs.Get(w, e, component.AnimationPlayerLinkComponent.Kind())

		player, ok := ecs.Get(w, ecs.Entity(link.Player), component.AnimationPlayerComponent.Kind())
		if !ok {
			zap.L().Warn("animation: linked animation player not found",
				zap.Stringer("entity", e), zap.Uint64("player", link.Player))
			continue
		}
		if ctrl.Walk == nil {
			zap.L().Warn("animation: controller has no walk basis", zap.Stringer("entity", e))
			continue
		}

		speed := ctrl.Walk.RunningVelocity.Length()
		directive := animating.UpdateByDiscriminant(ClassifyAnimation(speed, ctrl.Airborne))
		clip, fade := clipFor(directive.State, names)

		// A state committed while its clip was unplayable keeps retrying.
		pending := clip != "" && (clip != player.Clip || player.Starts == 0)
		if !directive.Alter && !pending {
			if directive.State.Kind == component.AnimationRunning {
				player.SetSpeed(runPlaybackSpeed(directive.State.Speed))
			}
			continue
		}

		if clip == "" {
			zap.L().Warn("animation: no clip configured",
				zap.Stringer("entity", e), zap.Stringer("state", directive.State.Kind))
			continue
		}
		if lib := animationLibrary(w, e, ecs.Entity(link.Player)); lib != nil {
			if _, ok := lib.Clip(clip); !ok {
				if directive.Alter {
					zap.L().Warn("animation: clip missing from library",
						zap.Stringer("entity", e), zap.String("clip", clip))
				}
				continue
			}
		}

		player.PlayWithTransition(clip, fade).Repeating()
		if directive.State.Kind == component.AnimationRunning {
			player.SetSpeed(runPlaybackSpeed(directive.State.Speed))
		} else {
			player.SetSpeed(1)
		}
	}
}

func runPlaybackSpeed(speed float64) float64 {
	return math.Max(speed/runAnimationScale, 1)
}

func clipFor(state component.AnimationState, names *component.CharacterAnimations) (string, float64) {
	switch state.Kind {
	case component.AnimationAirborne:
		return names.Aerial, groundFade
	case component.AnimationRunning:
		if names.Run != "" {
			return names.Run, groundFade
		}
		return names.Aerial, groundFade
	case component.AnimationWalking:
		return names.Walk, walkFade
	default:
		return names.Idle, groundFade
	}
}

// animationLibrary prefers the character's own clip set over the model's.
func animationLibrary(w *ecs.World, character, model ecs.Entity) *component.AnimationLibrary {
	if lib, ok := ecs.Get(w, character, component.AnimationLibraryComponent.Kind()); ok {
		return lib
	}
	if lib, ok := ecs.Get(w, model, component.AnimationLibraryComponent.Kind()); ok {
		return lib
	}
	return nil
}
