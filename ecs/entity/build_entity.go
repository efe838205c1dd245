package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/foxtrot/assets"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
	"github.com/milk9111/foxtrot/prefabs"
)

// Builder turns prefab files into entities. Input supplies the bindings for
// action components; Sounds, when set, supplies decoded audio.
type Builder struct {
	Input  input.Maps
	Sounds *assets.Bank
}

func NewBuilder(maps input.Maps, sounds *assets.Bank) *Builder {
	return &Builder{Input: maps, Sounds: sounds}
}

type buildContext struct {
	PrefabPath string
	builder    *Builder
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"npc_tag":              addNPCTag,
	"camera_tag":           addCameraTag,
	"name":                 addName,
	"transform":            addTransform,
	"model":                addModel,
	"physics_body":         addPhysicsBody,
	"obstacle":             addObstacle,
	"character_controller": addCharacterController,
	"player_motion":        addPlayerMotion,
	"player_actions":       addPlayerActions,
	"camera_actions":       addCameraActions,
	"ui_actions":           addUIActions,
	"animations":           addAnimations,
	"camera":               addCamera,
	"follower":             addFollower,
	"interactable":         addInteractable,
	"particle_emitter":     addParticleEmitter,
	"audio":                addAudio,
	"audio_cue":            addAudioCue,
}

// componentBuildOrder runs tags and transforms before anything that reads
// them; unknown-but-registered names run afterwards in sorted order.
var componentBuildOrder = []string{
	"player_tag",
	"npc_tag",
	"camera_tag",
	"name",
	"transform",
	"model",
	"physics_body",
	"obstacle",
	"character_controller",
	"player_motion",
	"player_actions",
	"camera_actions",
	"ui_actions",
	"animations",
	"camera",
	"follower",
	"interactable",
	"particle_emitter",
	"audio",
	"audio_cue",
}

// BuildEntity builds a prefab with the default bindings and no sounds.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return NewBuilder(input.DefaultMaps(), nil).Build(w, prefabPath)
}

func (b *Builder) Build(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return b.BuildSpec(w, prefabPath, spec)
}

// BuildSpec builds an already decoded prefab.
func (b *Builder) BuildSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, builder: b}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	order := append([]string(nil), componentBuildOrder...)
	var extra []string
	for name := range remaining {
		if !contains(componentBuildOrder, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	for _, name := range order {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SetEntityTransform moves an entity, creating its transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, z, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{Scale: 1}
	}
	t.Position.X = x
	t.Position.Y = y
	t.Position.Z = z
	t.Yaw = yaw
	if ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
		ctrl.GroundHeight = y
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addNPCTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.NPCTagComponent.Kind(), &component.NPCTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	name, ok := raw.(string)
	if !ok || name == "" {
		return fmt.Errorf("name must be a non-empty string")
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: vec3(spec.X, spec.Y, spec.Z),
		Yaw:      spec.Yaw,
		Scale:    scale,
	})
}

func addModel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ModelComponentSpec](raw)
	if err != nil {
		return err
	}
	shape := spec.Shape
	if shape == "" {
		shape = "capsule"
	}
	return ecs.Add(w, e, component.ModelComponent.Kind(), &component.Model{
		Shape:  shape,
		Color:  spec.Color.RGBA,
		Height: spec.Height,
		Radius: spec.Radius,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Depth:      spec.Depth,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}

func addObstacle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ObstacleComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{Height: spec.Height})
}

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterControllerComponentSpec](raw)
	if err != nil {
		return err
	}
	ctrl := &component.CharacterController{JumpSpeed: spec.JumpSpeed}
	if !spec.Inert {
		ctrl.Walk = &component.WalkBasis{
			Acceleration:    spec.Acceleration,
			Deceleration:    spec.Deceleration,
			AirAcceleration: spec.AirAcceleration,
			TurnSpeed:       spec.TurnSpeed,
		}
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		ctrl.GroundHeight = t.Position.Y
	}
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl)
}

func addPlayerMotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerMotionComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{
		WalkSpeed:        spec.WalkSpeed,
		SprintMultiplier: spec.SprintMultiplier,
	})
}

func addPlayerActions(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	return ecs.Add(w, e, component.PlayerActionsComponent.Kind(), &component.PlayerActions{Map: ctx.builder.Input.Player})
}

func addCameraActions(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	return ecs.Add(w, e, component.CameraActionsComponent.Kind(), &component.CameraActions{Map: ctx.builder.Input.Camera})
}

func addUIActions(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	return ecs.Add(w, e, component.UIActionsComponent.Kind(), &component.UIActions{Map: ctx.builder.Input.UI})
}

// addAnimations gives the character its clip names, clip library and a
// separate entity carrying the animation player.
func addAnimations(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationsComponentSpec](raw)
	if err != nil {
		return err
	}

	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, c := range spec.Clips {
		clips[name] = component.AnimationClip{
			Duration:  c.Duration,
			Bob:       c.Bob,
			Stride:    c.Stride,
			Footsteps: c.Footsteps,
		}
	}

	if err := ecs.Add(w, e, component.CharacterAnimationsComponent.Kind(), &component.CharacterAnimations{
		Idle:   spec.Idle,
		Walk:   spec.Walk,
		Run:    spec.Run,
		Aerial: spec.Aerial,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AnimationLibraryComponent.Kind(), &component.AnimationLibrary{Clips: clips}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AnimatingStateComponent.Kind(), &component.AnimatingState{}); err != nil {
		return err
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.AnimationPlayerComponent.Kind(), &component.AnimationPlayer{Owner: uint64(e)}); err != nil {
		ecs.DestroyEntity(w, player)
		return err
	}
	return ecs.Add(w, e, component.AnimationPlayerLinkComponent.Kind(), &component.AnimationPlayerLink{Player: uint64(player)})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	cam := &component.Camera{
		Target:      spec.Target,
		Yaw:         spec.Yaw,
		Pitch:       spec.Pitch,
		MinPitch:    spec.MinPitch,
		MaxPitch:    spec.MaxPitch,
		Distance:    spec.Distance,
		MinDistance: spec.MinDistance,
		MaxDistance: spec.MaxDistance,
		Sensitivity: spec.Sensitivity,
		ZoomSpeed:   spec.ZoomSpeed,
		Smoothness:  spec.Smoothness,
		FocusHeight: spec.FocusHeight,
	}
	if cam.Distance <= 0 {
		cam.Distance = 8
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

func addFollower(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FollowerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FollowerComponent.Kind(), &component.Follower{
		TargetName:   spec.Target,
		Speed:        spec.Speed,
		StoppingDist: spec.StoppingDistance,
		FollowRange:  spec.FollowRange,
		RepathFrames: spec.RepathFrames,
	})
}

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Dialog == "" {
		return fmt.Errorf("interactable needs a dialog")
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Radius: spec.Radius,
		Dialog: spec.Dialog,
		Prompt: spec.Prompt,
	})
}

func addParticleEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticleEmitterComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{
		Rate:     spec.Rate,
		Lifetime: spec.Lifetime,
		Size:     spec.Size,
		Color:    spec.Color.RGBA,
		Spread:   spec.Spread,
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return err
	}
	comp, err := buildAudioComponent(spec.Clips, ctx.builder.Sounds)
	if err != nil {
		return err
	}
	if comp == nil {
		return nil
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func addAudioCue(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioCueComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AudioCueComponent.Kind(), &component.AudioCue{
		Jump:     spec.Jump,
		Land:     spec.Land,
		Footstep: spec.Footstep,
	})
}
