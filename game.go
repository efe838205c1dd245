package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/foxtrot/assets"
	"github.com/milk9111/foxtrot/config"
	"github.com/milk9111/foxtrot/dev"
	"github.com/milk9111/foxtrot/dialog"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/ecs/entity"
	"github.com/milk9111/foxtrot/ecs/system"
	"github.com/milk9111/foxtrot/input"
	"github.com/milk9111/foxtrot/prefabs"
	"github.com/milk9111/foxtrot/saves"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

type gameState int

const (
	stateLoading gameState = iota
	stateMenu
	statePlaying
)

func (s gameState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateMenu:
		return "menu"
	case statePlaying:
		return "playing"
	}
	return fmt.Sprintf("gameState(%d)", int(s))
}

const atmosphereShader = "shaders/atmosphere.kage"

type Game struct {
	cfg   config.Config
	state gameState
	quit  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	src       *input.EbitenSource
	maps      input.Maps
	store     *saves.Store

	bank     *assets.Bank
	loadDone chan error

	physics     *system.PhysicsSystem
	dialogs     *system.DialogSystem
	persistence *system.PersistenceSystem
	renderer    *system.RenderSystem
	post        *system.PostProcess

	menuUI  *ebitenui.UI
	pauseUI *ebitenui.UI
	face    text.Face

	tools *dev.Tools
}

func NewGame(cfg config.Config) (*Game, error) {
	maps := input.DefaultMaps()
	if cfg.Bindings != "" {
		m, err := input.LoadBindings(cfg.Bindings)
		if err != nil {
			return nil, fmt.Errorf("game: bindings: %w", err)
		}
		maps = m
	}

	g := &Game{
		cfg:   cfg,
		state: stateLoading,
		src:   input.NewEbitenSource(),
		maps:  maps,
		store: saves.NewStore(cfg.SaveDir),
		bank:  assets.NewBank(),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}

	library, err := loadDialogLibrary()
	if err != nil {
		return nil, err
	}
	g.renderer = system.NewRenderSystem(library)
	g.dialogs = system.NewDialogSystem(library)

	shader, err := assets.LoadShader(atmosphereShader)
	if err != nil {
		// The game is playable without post-processing.
		zap.L().Warn("game: atmosphere shader unavailable", zap.Error(err))
	}
	g.post = system.NewPostProcess(shader)

	if cfg.Dev {
		tools, err := dev.Start()
		if err != nil {
			zap.L().Warn("game: dev tools unavailable", zap.Error(err))
		} else {
			tools.OnDialogsChanged = g.reloadDialogs
			tools.OnShaderChanged = g.reloadShader
			g.tools = tools
		}
	}

	g.menuUI = NewMenuUI(g)
	g.pauseUI = NewPauseUI(g)
	g.startLoading(cfg.LoaderWorkers)
	return g, nil
}

func loadDialogLibrary() (*dialog.Library, error) {
	files, err := prefabs.DialogFiles()
	if err != nil {
		return nil, fmt.Errorf("game: list dialogs: %w", err)
	}
	trees := make([]*dialog.Tree, 0, len(files))
	for _, f := range files {
		data, err := prefabs.Load(f)
		if err != nil {
			return nil, fmt.Errorf("game: load dialog %s: %w", f, err)
		}
		tree, err := dialog.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("game: parse dialog %s: %w", f, err)
		}
		trees = append(trees, tree)
	}
	return dialog.NewLibrary(trees...)
}

// startLoading decodes every embedded sound on a worker pool. Update polls
// loadDone so the window stays responsive.
func (g *Game) startLoading(workers int) {
	g.loadDone = make(chan error, 1)
	go func() {
		loader, err := assets.NewLoader(workers)
		if err != nil {
			g.loadDone <- err
			return
		}
		defer loader.Release()

		names, err := assets.SoundNames()
		if err != nil {
			g.loadDone <- err
			return
		}
		g.loadDone <- loader.LoadSounds(context.Background(), g.bank, names)
	}()
}

func (g *Game) finishLoading(err error) error {
	if err != nil {
		// Missing sounds only silence the game.
		zap.L().Warn("game: sound loading failed", zap.Error(err))
	}
	zap.L().Info("game: assets loaded", zap.Int("sounds", g.bank.Len()))

	if err := g.newWorld(); err != nil {
		return err
	}
	if g.cfg.SkipMenu {
		g.setState(statePlaying)
	} else {
		g.setState(stateMenu)
	}
	return nil
}

// newWorld builds an empty world and its scheduler. The persistence system
// loads the configured level on its first update.
func (g *Game) newWorld() error {
	g.world = ecs.NewWorld()
	system.SetTickRate(g.world, g.cfg.TPS)
	g.physics = system.NewPhysicsSystem()
	builder := entity.NewBuilder(g.maps, g.bank)
	g.persistence = system.NewPersistenceSystem(g.cfg.Level, builder, g.store, g.physics.Reset)

	s := ecs.NewScheduler()
	var errs []error
	add := func(phase ecs.Phase, name string, sys ecs.System, opts ...ecs.SystemOption) {
		errs = append(errs, s.Add(phase, name, sys, opts...))
	}
	notPaused := ecs.RunIf(system.NotPaused)

	add(ecs.PreUpdate, "input", system.NewActionInputSystem(g.src))
	add(ecs.PreUpdate, "actions_frozen", system.NewActionsFrozenSystem(), ecs.After("input"), ecs.RunIf(system.IsFrozen))

	add(ecs.Update, "pause", system.NewPauseSystem(g.togglePause))
	add(ecs.Update, "persistence", g.persistence, ecs.Before("player_control"))
	add(ecs.Update, "player_control", system.NewPlayerControlSystem(), notPaused)
	add(ecs.Update, "navigation", system.NewNavigationSystem(), ecs.After("player_control"), notPaused)
	add(ecs.Update, "character_controller", system.NewCharacterControllerSystem(), ecs.After("navigation"), notPaused)
	add(ecs.Update, "physics", g.physics, ecs.After("character_controller"), notPaused)
	add(ecs.Update, "interaction", system.NewInteractionSystem(), ecs.After("physics"), notPaused)
	add(ecs.Update, "dialog", g.dialogs, ecs.After("interaction"), notPaused)
	add(ecs.Update, "animation", system.NewAnimationStateSystem(), ecs.After("physics"), notPaused)
	add(ecs.Update, "camera", system.NewCameraSystem(), ecs.After("physics"), notPaused)
	add(ecs.Update, "particles", system.NewParticleSystem(0), ecs.After("animation"), notPaused)
	add(ecs.Update, "audio", system.NewAudioSystem(), ecs.After("animation", "character_controller"), notPaused)
	add(ecs.Update, "music", system.NewMusicSystem(g.bank), ecs.After("persistence"))

	add(ecs.PostUpdate, "animation_player", system.NewAnimationPlayerSystem(), notPaused)
	add(ecs.PostUpdate, "ttl", system.NewTTLSystem(), notPaused)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("game: schedule: %w", err)
	}
	if err := s.Build(); err != nil {
		return fmt.Errorf("game: schedule: %w", err)
	}
	g.scheduler = s
	return nil
}

func (g *Game) setState(s gameState) {
	if g.state == s {
		return
	}
	zap.L().Info("game: state", zap.Stringer("from", g.state), zap.Stringer("to", s))
	g.state = s
	if s == statePlaying {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (g *Game) togglePause() {
	g.setPaused(!system.IsPaused(g.world))
}

func (g *Game) setPaused(paused bool) {
	if g.world == nil || !system.SetPaused(g.world, paused) {
		return
	}
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

// request adds a one-shot request component for the persistence system.
func request[T any](w *ecs.World, kind component.ComponentKind[T], value *T) {
	if w == nil {
		return
	}
	if err := ecs.Add(w, w.CreateEntity(), kind, value); err != nil {
		zap.L().Warn("game: request", zap.Error(err))
	}
}

func (g *Game) saveGame() {
	request(g.world, component.SaveRequestComponent.Kind(), &component.SaveRequest{})
}

func (g *Game) loadGame(id string) {
	request(g.world, component.LoadSaveRequestComponent.Kind(), &component.LoadSaveRequest{ID: id})
}

// continueGame loads the newest save, or starts fresh when there is none.
func (g *Game) continueGame() {
	latest, err := g.store.Latest()
	switch {
	case errors.Is(err, saves.ErrNotFound):
	case err != nil:
		zap.L().Warn("game: latest save", zap.Error(err))
	default:
		g.loadGame(latest.ID)
	}
	g.setState(statePlaying)
}

func (g *Game) reloadDialogs() {
	library, err := loadDialogLibrary()
	if err != nil {
		zap.L().Warn("game: reload dialogs", zap.Error(err))
		return
	}
	g.dialogs.SetLibrary(library)
	g.renderer.SetLibrary(library)
	zap.L().Info("game: dialogs reloaded")
}

func (g *Game) reloadShader(path string) {
	shader, err := assets.LoadShader(atmosphereShader)
	if err != nil {
		zap.L().Warn("game: reload shader", zap.String("path", path), zap.Error(err))
		return
	}
	g.post = system.NewPostProcess(shader)
	zap.L().Info("game: shader reloaded")
}

func (g *Game) Update() error {
	if g.quit {
		if g.tools != nil {
			_ = g.tools.Close()
		}
		return ebiten.Termination
	}

	switch g.state {
	case stateLoading:
		select {
		case err := <-g.loadDone:
			return g.finishLoading(err)
		default:
		}
	case stateMenu:
		g.menuUI.Update()
	case statePlaying:
		g.updateDevKeys()
		g.scheduler.Update(g.world)
		if system.IsPaused(g.world) {
			g.pauseUI.Update()
		}
	}
	return nil
}

func (g *Game) updateDevKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.cfg.Debug = !g.cfg.Debug
	}
	if g.tools == nil {
		return
	}
	g.tools.Poll(g.world)
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		dev.RequestReload(g.world)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		line, err := g.tools.CopyPlayerPosition(g.world)
		if err != nil {
			zap.L().Warn("game: copy position", zap.Error(err))
		}
		zap.L().Info("game: player position", zap.String("spawn", line))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.state {
	case stateLoading:
		g.drawCentered(screen, "Loading...")
	case stateMenu:
		g.menuUI.Draw(screen)
	case statePlaying:
		target := g.post.Target(screen)
		g.renderer.Draw(g.world, target)
		g.post.Apply(g.world, screen)

		if g.cfg.Debug {
			b := screen.Bounds()
			if proj, ok := g.renderer.Projector(g.world, float64(b.Dx()), float64(b.Dy())); ok {
				system.DrawPhysicsDebug(g.physics.Space(), proj, screen)
			}
			system.DrawPlayerStateDebug(g.world, screen)
		}
		if system.IsPaused(g.world) {
			g.pauseUI.Draw(screen)
		}
	}
}

func (g *Game) drawCentered(screen *ebiten.Image, s string) {
	b := screen.Bounds()
	w, h := text.Measure(s, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(b.Dx())-w)/2, (float64(b.Dy())-h)/2)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
