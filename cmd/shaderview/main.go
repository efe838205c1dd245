// Command shaderview previews the atmosphere post-process over a test
// pattern. Arrow keys tune vignette and fog, P toggles the paused tint and R
// recompiles the shader from disk.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/foxtrot/assets"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/system"
	"github.com/milk9111/foxtrot/logger"
	"go.uber.org/zap"
)

const (
	screenWidth  = 800
	screenHeight = 600
	tileSize     = 50
	shaderPath   = "shaders/atmosphere.kage"
)

type Game struct {
	world *ecs.World
	post  *system.PostProcess
}

func NewGame() *Game {
	return &Game{world: ecs.NewWorld(), post: system.NewPostProcess(loadShader())}
}

func loadShader() *ebiten.Shader {
	sh, err := assets.LoadShader(shaderPath)
	if err != nil {
		zap.L().Warn("atmosphere shader compile error", zap.Error(err))
		return nil
	}
	return sh
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		vignette, fog := g.post.Vignette, g.post.Fog
		g.post = system.NewPostProcess(loadShader())
		g.post.Vignette, g.post.Fog = vignette, fog
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		system.SetPaused(g.world, !system.IsPaused(g.world))
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.post.Vignette += 0.01
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.post.Vignette = max(0, g.post.Vignette-0.01)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.post.Fog = min(1, g.post.Fog+0.01)
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.post.Fog = max(0, g.post.Fog-0.01)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	target := g.post.Target(screen)
	target.Fill(color.RGBA{0x8f, 0xb8, 0xde, 0xff})
	for y := 0; y < screenHeight/tileSize; y++ {
		for x := 0; x < screenWidth/tileSize; x++ {
			if (x+y)%2 != 0 {
				continue
			}
			shade := uint8(0x40 + 0x10*(y%8))
			vector.FillRect(target, float32(x*tileSize), float32(y*tileSize), tileSize, tileSize, color.RGBA{0x3a, shade, 0x3a, 0xff}, false)
		}
	}
	g.post.Apply(g.world, screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("vignette %.2f  fog %.2f  paused %v", g.post.Vignette, g.post.Fog, system.IsPaused(g.world)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flush, err := logger.Install(logger.Config{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer flush()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Atmosphere Preview")
	if err := ebiten.RunGame(NewGame()); err != nil {
		zap.L().Fatal("shaderview", zap.Error(err))
	}
}
