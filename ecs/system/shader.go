package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

const (
	defaultVignette = 0.55
	defaultFog      = 0.35
)

var (
	fogColor    = []float32{0.72, 0.8, 0.88}
	neutralTint = []float32{1, 1, 1}
	pausedTint  = []float32{0.55, 0.55, 0.62}
	dialogTint  = []float32{1.08, 0.98, 0.86}
)

// PostProcess renders the world into an offscreen buffer and runs it through
// the atmosphere shader on the way to the screen.
type PostProcess struct {
	shader   *ebiten.Shader
	buffer   *ebiten.Image
	Vignette float32
	Fog      float32
}

func NewPostProcess(shader *ebiten.Shader) *PostProcess {
	return &PostProcess{shader: shader, Vignette: defaultVignette, Fog: defaultFog}
}

// Target returns an offscreen image matching the screen size.
func (p *PostProcess) Target(screen *ebiten.Image) *ebiten.Image {
	b := screen.Bounds()
	if p.buffer == nil || p.buffer.Bounds().Dx() != b.Dx() || p.buffer.Bounds().Dy() != b.Dy() {
		if p.buffer != nil {
			p.buffer.Deallocate()
		}
		p.buffer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	p.buffer.Clear()
	return p.buffer
}

func (p *PostProcess) Apply(w *ecs.World, screen *ebiten.Image) {
	if p == nil || p.buffer == nil || screen == nil {
		return
	}
	if p.shader == nil {
		screen.DrawImage(p.buffer, nil)
		return
	}

	b := p.buffer.Bounds()
	op := &ebiten.DrawRectShaderOptions{
		Images:   [4]*ebiten.Image{p.buffer, nil, nil, nil},
		Uniforms: p.Uniforms(w),
	}
	screen.DrawRectShader(b.Dx(), b.Dy(), p.shader, op)
}

// Uniforms picks the grade for the current world state.
func (p *PostProcess) Uniforms(w *ecs.World) map[string]any {
	tint := neutralTint
	vignette := p.Vignette
	if w != nil {
		if IsPaused(w) {
			tint = pausedTint
			vignette *= 1.5
		} else if _, ok := w.First(component.DialogSessionComponent.Kind()); ok {
			tint = dialogTint
		}
	}
	return map[string]any{
		"Vignette": vignette,
		"Tint":     tint,
		"FogColor": fogColor,
		"Fog":      p.Fog,
	}
}
