package levels

import (
	"errors"
	"testing"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("expected at least one level")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if lvl.Name == "" {
				t.Fatalf("level has no name")
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty_bounds", "name: x\nbounds: {min_x: 1, max_x: 1, min_z: 0, max_z: 1}\nspawns: [{prefab: a.yaml}]", nil},
		{"no_spawns", "name: x\nbounds: {min_x: 0, max_x: 1, min_z: 0, max_z: 1}", ErrNoSpawns},
		{"spawn_without_prefab", "name: x\nbounds: {min_x: 0, max_x: 1, min_z: 0, max_z: 1}\nspawns: [{name: a}]", nil},
		{"bad_yaml", "name: [", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
