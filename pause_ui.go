package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	menuTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuPanelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	menuButtonIdle = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	menuButtonOver = color.NRGBA{R: 0x4a, G: 0x55, B: 0x4a, A: 255}
)

type menuButton struct {
	label   string
	onClick func()
}

// newMenuPanel builds a centered panel with a title and a column of buttons.
// Buttons use colored nine-slices and the built-in basic font, so no theme
// assets are needed.
func newMenuPanel(titleText string, width, height int, buttons ...menuButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(menuPanelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(menuButtonIdle),
		Hover:   imageui.NewNineSliceColor(menuButtonOver),
		Pressed: imageui.NewNineSliceColor(menuButtonIdle),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: menuTextColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text(titleText, &face, menuTextColor),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)

	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the in-game menu shown while the world is paused.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newMenuPanel("Paused", g.cfg.Width, g.cfg.Height,
		menuButton{"Resume", func() { g.setPaused(false) }},
		menuButton{"Save", func() {
			g.saveGame()
			g.setPaused(false)
		}},
		menuButton{"Load", func() {
			// empty id loads the newest save
			g.loadGame("")
			g.setPaused(false)
		}},
		menuButton{"Main Menu", func() {
			g.setPaused(false)
			g.setState(stateMenu)
		}},
		menuButton{"Quit", func() { g.quit = true }},
	)
}
