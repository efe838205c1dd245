package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/config"
	"github.com/milk9111/foxtrot/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromOS()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flush, err := logger.Install(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer flush()

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("foxtrot")
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		zap.L().Fatal("startup failed", zap.Error(err))
	}

	zap.L().Info("starting", zap.String("level", cfg.Level), zap.Bool("dev", cfg.Dev))
	if err := ebiten.RunGame(game); err != nil {
		zap.L().Error("game exited", zap.Error(err))
	}
}
