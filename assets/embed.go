package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage sounds/*.wav
var assetsFS embed.FS

// LoadFile loads an asset by assets-relative path. A copy under ./assets on
// disk wins over the embedded one so edits show up without a rebuild.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if b, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadShader compiles an embedded Kage shader.
func LoadShader(path string) (*ebiten.Shader, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read shader %q: %w", path, err)
	}
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("assets: compile shader %q: %w", path, err)
	}
	return shader, nil
}

// SoundNames lists the embedded sound files.
func SoundNames() ([]string, error) {
	entries, err := assetsFS.ReadDir("sounds")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, "sounds/"+e.Name())
	}
	return names, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
