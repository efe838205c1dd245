package main

import "github.com/ebitenui/ebitenui"

// NewMenuUI builds the main menu shown after loading.
func NewMenuUI(g *Game) *ebitenui.UI {
	return newMenuPanel("foxtrot", g.cfg.Width, g.cfg.Height,
		menuButton{"Play", func() { g.setState(statePlaying) }},
		menuButton{"Continue", g.continueGame},
		menuButton{"Quit", func() { g.quit = true }},
	)
}
