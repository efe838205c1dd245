// Package dev holds the tools behind the -dev flag: data hot reload and
// copying the player position for level authoring.
package dev

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/prefabs"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// DefaultDirs are the data directories watched for changes.
var DefaultDirs = []string{"prefabs", filepath.Join("prefabs", "dialogs"), "levels", filepath.Join("assets", "shaders")}

type Tools struct {
	watcher      *prefabs.Watcher
	clipboardErr error
	// OnDialogsChanged runs when a dialog file changes instead of a world
	// reload.
	OnDialogsChanged func()
	// OnShaderChanged receives the path of a changed shader.
	OnShaderChanged func(path string)
}

// Start watches whichever of dirs exist. Missing directories are skipped so
// the game can run from any working directory.
func Start(dirs ...string) (*Tools, error) {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	var existing []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}

	t := &Tools{clipboardErr: clipboard.Init()}
	if t.clipboardErr != nil {
		zap.L().Warn("dev: clipboard unavailable", zap.Error(t.clipboardErr))
	}
	if len(existing) == 0 {
		zap.L().Warn("dev: no data directories to watch", zap.Strings("dirs", dirs))
		return t, nil
	}

	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		return nil, fmt.Errorf("dev: watch: %w", err)
	}
	t.watcher = w
	zap.L().Info("dev: watching", zap.Strings("dirs", existing))
	return t, nil
}

func (t *Tools) Close() error {
	if t == nil || t.watcher == nil {
		return nil
	}
	return t.watcher.Close()
}

// Poll drains pending file events without blocking and turns them into
// reload requests.
func (t *Tools) Poll(w *ecs.World) {
	if t == nil || t.watcher == nil || w == nil {
		return
	}

	reload := false
	for {
		select {
		case path, ok := <-t.watcher.Events:
			if !ok {
				t.watcher = nil
				return
			}
			switch Classify(path) {
			case ChangeDialog:
				if t.OnDialogsChanged != nil {
					t.OnDialogsChanged()
				}
			case ChangeShader:
				if t.OnShaderChanged != nil {
					t.OnShaderChanged(path)
				}
			default:
				reload = true
			}
			zap.L().Debug("dev: data changed", zap.String("path", path))
		case err := <-t.watcher.Errors:
			zap.L().Warn("dev: watcher error", zap.Error(err))
		default:
			if reload {
				RequestReload(w)
			}
			return
		}
	}
}

type Change int

const (
	ChangeWorld Change = iota
	ChangeDialog
	ChangeShader
)

func Classify(path string) Change {
	s := filepath.ToSlash(path)
	switch {
	case strings.EqualFold(filepath.Ext(s), ".kage"):
		return ChangeShader
	case strings.Contains(s, "/dialogs/") || strings.HasPrefix(s, "dialogs/"):
		return ChangeDialog
	default:
		return ChangeWorld
	}
}

// RequestReload asks for a level reload that keeps the player in place.
func RequestReload(w *ecs.World) {
	if _, ok := w.First(component.ReloadRequestComponent.Kind()); ok {
		return
	}
	_ = ecs.Add(w, w.CreateEntity(), component.ReloadRequestComponent.Kind(), &component.ReloadRequest{KeepPlayer: true})
}

// PlayerSpawnLine formats the player position as a level spawn entry.
func PlayerSpawnLine(w *ecs.World) (string, error) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return "", errors.New("dev: no player")
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return "", errors.New("dev: player has no transform")
	}
	return fmt.Sprintf("at: {x: %.2f, z: %.2f}\nyaw: %.2f", t.Position.X, t.Position.Z, t.Yaw), nil
}

// CopyPlayerPosition puts the player's spawn line on the system clipboard.
func (t *Tools) CopyPlayerPosition(w *ecs.World) (string, error) {
	line, err := PlayerSpawnLine(w)
	if err != nil {
		return "", err
	}
	if t == nil || t.clipboardErr != nil {
		return line, fmt.Errorf("dev: clipboard unavailable")
	}
	clipboard.Write(clipboard.FmtText, []byte(line))
	return line, nil
}
