package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/dialog"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/ecs/render"
	"golang.org/x/image/font/basicfont"
)

const (
	defaultFov      = 1.0
	groundTile      = 2.0
	defaultGroundSz = 20.0
	lineHeight      = 16
)

var (
	skyColor      = color.RGBA{R: 120, G: 170, B: 210, A: 255}
	groundLight   = color.RGBA{R: 104, G: 150, B: 88, A: 255}
	groundDark    = color.RGBA{R: 92, G: 136, B: 78, A: 255}
	shadowColor   = color.RGBA{A: 70}
	boxColor      = color.RGBA{R: 150, G: 120, B: 90, A: 255}
	dialogBgColor = color.RGBA{R: 16, G: 18, B: 28, A: 220}
	choiceColor   = color.RGBA{R: 250, G: 220, B: 120, A: 255}
	lightDir      = common.Vec3{X: -0.4, Y: 0.8, Z: -0.45}.Normalize()
)

type drawItem struct {
	depth float64
	draw  func(screen *ebiten.Image)
}

// RenderSystem draws the world through the orbit camera and the HUD on top.
type RenderSystem struct {
	camEntity ecs.Entity
	library   *dialog.Library
	face      text.Face
	items     []drawItem
	Fov       float64
}

func NewRenderSystem(library *dialog.Library) *RenderSystem {
	return &RenderSystem{
		library: library,
		face:    text.NewGoXFace(basicfont.Face7x13),
		Fov:     defaultFov,
	}
}

func (r *RenderSystem) SetLibrary(library *dialog.Library) {
	r.library = library
}

// Projector builds the projection for the current camera, if any.
func (r *RenderSystem) Projector(w *ecs.World, width, height float64) (*render.Projector, bool) {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return nil, false
		}
		r.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}

	fov := r.Fov
	if fov <= 0 {
		fov = defaultFov
	}
	focus := common.Vec3{X: cam.FocusX, Y: cam.FocusY, Z: cam.FocusZ}
	return render.NewProjector(CameraEye(cam), focus, fov, width, height), true
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(skyColor)
	bounds := screen.Bounds()
	proj, ok := r.Projector(w, float64(bounds.Dx()), float64(bounds.Dy()))
	if !ok {
		return
	}

	r.items = r.items[:0]
	r.drawGround(w, proj, screen)
	r.collectShadows(w, proj, screen)
	r.flush(screen)

	r.collectBoxes(w, proj)
	r.collectCharacters(w, proj)
	r.collectParticles(w, proj)
	r.flush(screen)

	r.drawHUD(w, screen)
}

// flush paints queued items far to near.
func (r *RenderSystem) flush(screen *ebiten.Image) {
	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].depth > r.items[j].depth
	})
	for _, it := range r.items {
		it.draw(screen)
	}
	r.items = r.items[:0]
}

func (r *RenderSystem) push(depth float64, fn func(screen *ebiten.Image)) {
	r.items = append(r.items, drawItem{depth: depth, draw: fn})
}

func (r *RenderSystem) drawGround(w *ecs.World, proj *render.Projector, screen *ebiten.Image) {
	b := component.LevelBounds{MinX: -defaultGroundSz, MinZ: -defaultGroundSz, MaxX: defaultGroundSz, MaxZ: defaultGroundSz}
	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if lb, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok {
			b = *lb
		}
	}

	for x := b.MinX; x < b.MaxX; x += groundTile {
		for z := b.MinZ; z < b.MaxZ; z += groundTile {
			x1 := math.Min(x+groundTile, b.MaxX)
			z1 := math.Min(z+groundTile, b.MaxZ)
			corners := []common.Vec3{{X: x, Z: z}, {X: x1, Z: z}, {X: x1, Z: z1}, {X: x, Z: z1}}
			pts, ok := projectAll(proj, corners)
			if !ok {
				continue
			}
			clr := groundLight
			if (int(math.Floor(x/groundTile))+int(math.Floor(z/groundTile)))%2 != 0 {
				clr = groundDark
			}
			center := common.Vec3{X: (x + x1) / 2, Z: (z + z1) / 2}
			r.push(proj.Depth(center), func(screen *ebiten.Image) {
				render.FillPolygon(screen, pts, clr)
			})
		}
	}
}

func (r *RenderSystem) collectShadows(w *ecs.World, proj *render.Projector, screen *ebiten.Image) {
	ecs.ForEach2(w, component.ModelComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Model, t *component.Transform) {
		if ecs.Has(w, e, component.ObstacleComponent.Kind()) {
			return
		}
		ground := common.Vec3{X: t.Position.X, Z: t.Position.Z}
		if ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
			ground.Y = ctrl.GroundHeight
		}
		cx, cy, ok := proj.Project(ground)
		if !ok {
			return
		}
		depth := proj.Depth(ground)
		radius := m.Radius * scaleOf(t) * proj.Scale(depth)
		// shrink with height above ground
		lift := math.Max(0, t.Position.Y-ground.Y)
		radius *= 1 / (1 + lift*0.15)
		r.push(depth, func(screen *ebiten.Image) {
			render.FillEllipse(screen, cx, cy, radius, radius*0.45, shadowColor)
		})
	})
}

func (r *RenderSystem) collectBoxes(w *ecs.World, proj *render.Projector) {
	ecs.ForEach3(w, component.ObstacleComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.Obstacle, body *component.PhysicsBody, t *component.Transform) {
		clr := boxColor
		if m, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
			clr = m.Color
		}
		hx, hz := body.Width/2, body.Depth/2
		x0, x1 := t.Position.X-hx, t.Position.X+hx
		z0, z1 := t.Position.Z-hz, t.Position.Z+hz
		y0, y1 := t.Position.Y, t.Position.Y+o.Height

		faces := []struct {
			normal  common.Vec3
			corners []common.Vec3
		}{
			{common.Vec3{Y: 1}, []common.Vec3{{X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1}}},
			{common.Vec3{Z: -1}, []common.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z0}}},
			{common.Vec3{Z: 1}, []common.Vec3{{X: x1, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z1}, {X: x0, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z1}}},
			{common.Vec3{X: -1}, []common.Vec3{{X: x0, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z1}}},
			{common.Vec3{X: 1}, []common.Vec3{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z0}}},
		}

		for _, f := range faces {
			center := faceCenter(f.corners)
			if !proj.Facing(center, f.normal) {
				continue
			}
			pts, ok := projectAll(proj, f.corners)
			if !ok {
				continue
			}
			shade := render.Shade(clr, 0.55+0.45*math.Max(0, f.normal.Dot(lightDir)))
			r.push(proj.Depth(center), func(screen *ebiten.Image) {
				render.FillPolygon(screen, pts, shade)
			})
		}
	})
}

func (r *RenderSystem) collectCharacters(w *ecs.World, proj *render.Projector) {
	ecs.ForEach2(w, component.ModelComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Model, t *component.Transform) {
		if ecs.Has(w, e, component.ObstacleComponent.Kind()) {
			return
		}

		bob, stride := animationPose(w, e)
		scale := scaleOf(t)
		height := m.Height * scale
		radius := m.Radius * scale

		base := t.Position.Add(common.Vec3{Y: bob})
		top := base.Add(common.Vec3{Y: height - radius})
		bottom := base.Add(common.Vec3{Y: radius})
		bx, by, okB := proj.Project(bottom)
		tx, ty, okT := proj.Project(top)
		if !okB || !okT {
			return
		}
		depth := proj.Depth(base)
		pr := radius * proj.Scale(depth)

		fwd := common.YawForward(t.Yaw)
		right := common.YawRight(t.Yaw)
		nose := base.Add(common.Vec3{X: fwd.X * radius, Y: height * 0.75, Z: fwd.Y * radius})
		nx, ny, okN := proj.Project(nose)
		noseInFront := proj.Depth(nose) < depth

		var feet [2]render.Point
		feetOK := true
		for i, side := range []float64{-1, 1} {
			swing := fwd.Scale(stride * side)
			foot := t.Position.Add(common.Vec3{
				X: right.X*radius*0.5*side + swing.X,
				Y: 0.1,
				Z: right.Y*radius*0.5*side + swing.Y,
			})
			fx, fy, ok := proj.Project(foot)
			if !ok {
				feetOK = false
				break
			}
			feet[i] = render.Point{X: fx, Y: fy}
		}

		body := m.Color
		dark := render.Shade(body, 0.6)
		r.push(depth, func(screen *ebiten.Image) {
			if feetOK {
				for _, f := range feet {
					vector.FillCircle(screen, float32(f.X), float32(f.Y), float32(pr*0.35), dark, true)
				}
			}
			if okN && !noseInFront {
				vector.FillCircle(screen, float32(nx), float32(ny), float32(pr*0.3), dark, true)
			}
			vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), float32(pr*2), body, true)
			vector.FillCircle(screen, float32(bx), float32(by), float32(pr), body, true)
			vector.FillCircle(screen, float32(tx), float32(ty), float32(pr), render.Shade(body, 1.15), true)
			if okN && noseInFront {
				vector.FillCircle(screen, float32(nx), float32(ny), float32(pr*0.3), dark, true)
			}
		})
	})
}

func (r *RenderSystem) collectParticles(w *ecs.World, proj *render.Projector) {
	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Particle, t *component.Transform) {
		x, y, ok := proj.Project(t.Position)
		if !ok {
			return
		}
		depth := proj.Depth(t.Position)
		size := p.Size * proj.Scale(depth)
		clr := render.Fade(p.Color, ParticleAlpha(p))
		r.push(depth, func(screen *ebiten.Image) {
			vector.FillCircle(screen, float32(x), float32(y), float32(size), clr, true)
		})
	})
}

// animationPose reads the linked player's clip for a vertical bob and foot
// swing.
func animationPose(w *ecs.World, e ecs.Entity) (bob, stride float64) {
	link, ok := ecs.Get(w, e, component.AnimationPlayerLinkComponent.Kind())
	if !ok {
		return 0, 0
	}
	player, ok := ecs.Get(w, ecs.Entity(link.Player), component.AnimationPlayerComponent.Kind())
	if !ok || player.Clip == "" {
		return 0, 0
	}
	lib := animationLibrary(w, e, ecs.Entity(link.Player))
	if lib == nil {
		return 0, 0
	}
	clip, ok := lib.Clip(player.Clip)
	if !ok || clip.Duration <= 0 {
		return 0, 0
	}

	phase := player.Time / clip.Duration
	steps := math.Max(float64(clip.Footsteps), 1)
	weight := player.Weight()
	bob = clip.Bob * math.Abs(math.Sin(math.Pi*steps*phase)) * weight
	stride = clip.Stride * math.Sin(math.Pi*steps*phase) * weight
	return bob, stride
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	bounds := screen.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	if sessionEnt, ok := w.First(component.DialogSessionComponent.Kind()); ok {
		session, _ := ecs.Get(w, sessionEnt, component.DialogSessionComponent.Kind())
		r.drawDialog(screen, session, width, height)
		return
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if _, inter, ok := NearestInteractable(w, player); ok {
		prompt := inter.Prompt
		if prompt == "" {
			prompt = "Talk"
		}
		r.drawText(screen, "[E] "+prompt, width/2-float64(len(prompt)+4)*3.5, height-48, color.White)
	}
}

func (r *RenderSystem) drawDialog(screen *ebiten.Image, session *component.DialogSession, width, height float64) {
	if r.library == nil {
		return
	}
	tree, err := r.library.Tree(session.Dialog)
	if err != nil {
		return
	}
	node, ok := tree.Node(session.Node)
	if !ok {
		return
	}

	lines := 3 + len(session.Choices)
	boxH := float64(lines*lineHeight + 16)
	x, y := 24.0, height-boxH-24
	vector.FillRect(screen, float32(x), float32(y), float32(width-48), float32(boxH), dialogBgColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width-48), float32(boxH), 2, color.White, false)

	cy := y + 8
	if node.Speaker != "" {
		r.drawText(screen, node.Speaker, x+12, cy, choiceColor)
		cy += lineHeight
	}

	shown := int(session.Shown)
	body := []rune(node.Text)
	if shown < len(body) {
		body = body[:shown]
	}
	r.drawText(screen, string(body), x+12, cy, color.White)
	cy += lineHeight * 1.5

	if shown < len([]rune(node.Text)) {
		return
	}
	for slot, idx := range session.Choices {
		if idx < 0 || idx >= len(node.Choices) {
			continue
		}
		label := fmt.Sprintf("%d. %s", (slot+1)%10, node.Choices[idx].Text)
		r.drawText(screen, label, x+24, cy, choiceColor)
		cy += lineHeight
	}
}

func (r *RenderSystem) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func projectAll(proj *render.Projector, corners []common.Vec3) ([]render.Point, bool) {
	pts := make([]render.Point, 0, len(corners))
	for _, c := range corners {
		x, y, ok := proj.Project(c)
		if !ok {
			return nil, false
		}
		pts = append(pts, render.Point{X: x, Y: y})
	}
	return pts, true
}

func faceCenter(corners []common.Vec3) common.Vec3 {
	var c common.Vec3
	for _, p := range corners {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(corners)))
}

func scaleOf(t *component.Transform) float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}
