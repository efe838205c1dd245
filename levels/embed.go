// Package levels holds the level files: bounds, nav settings and the prefabs
// to spawn.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrNoSpawns = errors.New("levels: level spawns nothing")

type Level struct {
	Name   string  `yaml:"name"`
	Music  string  `yaml:"music"`
	Bounds Bounds  `yaml:"bounds"`
	Nav    Nav     `yaml:"nav"`
	Spawns []Spawn `yaml:"spawns"`
}

type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

type Nav struct {
	CellSize    float64 `yaml:"cell_size"`
	AgentRadius float64 `yaml:"agent_radius"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Size overrides an obstacle prefab's footprint and height.
type Size struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

type Spawn struct {
	Prefab string  `yaml:"prefab"`
	Name   string  `yaml:"name"`
	At     *Point  `yaml:"at"`
	Yaw    float64 `yaml:"yaw"`
	Size   *Size   `yaml:"size"`
}

// Load reads a level by file name, preferring ./levels on disk.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Bounds.MaxX <= l.Bounds.MinX || l.Bounds.MaxZ <= l.Bounds.MinZ {
		return fmt.Errorf("levels: %s: empty bounds", l.Name)
	}
	if len(l.Spawns) == 0 {
		return fmt.Errorf("levels: %s: %w", l.Name, ErrNoSpawns)
	}
	for i, s := range l.Spawns {
		if s.Prefab == "" {
			return fmt.Errorf("levels: %s: spawn %d has no prefab", l.Name, i)
		}
	}
	return nil
}

// List returns the embedded level file names.
func List() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func cleanLevelPath(p string) string {
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return s
}
