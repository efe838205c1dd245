// Package saves stores save games as YAML files named by a UUID.
package saves

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("saves: not found")

type Pose struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type Save struct {
	ID      string         `yaml:"id"`
	Level   string         `yaml:"level"`
	SavedAt time.Time      `yaml:"saved_at"`
	Player  Pose           `yaml:"player"`
	Flags   map[string]int `yaml:"flags,omitempty"`
}

type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) Dir() string { return s.dir }

// Put writes save, assigning an id on first write.
func (s *Store) Put(save *Save) (string, error) {
	if save == nil {
		return "", errors.New("saves: nil save")
	}
	if save.ID == "" {
		save.ID = uuid.NewString()
	} else if _, err := uuid.Parse(save.ID); err != nil {
		return "", fmt.Errorf("saves: invalid id %q: %w", save.ID, err)
	}
	save.SavedAt = s.now().UTC()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("saves: create dir: %w", err)
	}
	data, err := yaml.Marshal(save)
	if err != nil {
		return "", fmt.Errorf("saves: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, save.ID+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("saves: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saves: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saves: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(save.ID)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saves: rename: %w", err)
	}
	return save.ID, nil
}

func (s *Store) Get(id string) (*Save, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("saves: %q: %w", id, ErrNotFound)
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("saves: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("saves: read %s: %w", id, err)
	}
	var save Save
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("saves: unmarshal %s: %w", id, err)
	}
	return &save, nil
}

// List returns every readable save, newest first. Corrupt files are skipped.
func (s *Store) List() ([]*Save, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("saves: list: %w", err)
	}

	var out []*Save
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}
		save, err := s.Get(id)
		if err != nil {
			continue
		}
		out = append(out, save)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

func (s *Store) Latest() (*Save, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[0], nil
}

func (s *Store) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("saves: %q: %w", id, ErrNotFound)
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("saves: %s: %w", id, ErrNotFound)
	}
	return err
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}
