package saves

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "saves"))
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestPutGet(t *testing.T) {
	s := newTestStore(t)
	in := &Save{Level: "meadow", Player: Pose{X: 1, Z: -2, Yaw: 0.5}, Flags: map[string]int{"met_keeper": 1}}
	id, err := s.Put(in)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if id == "" || in.ID != id {
		t.Fatalf("expected an assigned id, got %q", id)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Level != "meadow" || got.Player != in.Player || got.Flags["met_keeper"] != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	// overwriting keeps the id
	in.Player.X = 9
	if id2, err := s.Put(in); err != nil || id2 != id {
		t.Fatalf("expected overwrite under %s, got %s (%v)", id, id2, err)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name string
		id   string
	}{
		{"missing", "6f1c3b7e-3e0e-4a38-9d7b-0d6f7c2b8a11"},
		{"not_a_uuid", "../../etc/passwd"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Get(tc.id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
	if _, err := s.Latest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from empty store, got %v", err)
	}
	if err := s.Delete("6f1c3b7e-3e0e-4a38-9d7b-0d6f7c2b8a11"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestListNewestFirstSkipsCorrupt(t *testing.T) {
	s := newTestStore(t)
	first, _ := s.Put(&Save{Level: "a"})
	second, _ := s.Put(&Save{Level: "b"})

	if err := os.WriteFile(filepath.Join(s.Dir(), "11111111-1111-1111-1111-111111111111.yaml"), []byte("level: ["), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second || all[1].ID != first {
		t.Fatalf("unexpected order: %+v", all)
	}

	latest, err := s.Latest()
	if err != nil || latest.ID != second {
		t.Fatalf("expected latest %s, got %+v (%v)", second, latest, err)
	}
}

func TestPutRejectsBadID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put(&Save{ID: "slot-1"}); err == nil {
		t.Fatalf("expected invalid id error")
	}
}

func TestDeleteStaysInsideDir(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Put(&Save{Level: "meadow"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	outside := filepath.Join(filepath.Dir(s.Dir()), "outside.yaml")
	if err := os.WriteFile(outside, []byte("level: x\n"), 0o644); err != nil {
		t.Fatalf("write outside: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"escape", "../outside", ErrNotFound},
		{"not_a_uuid", "slot-1", ErrNotFound},
		{"existing", id, nil},
		{"already_deleted", id, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Delete(tc.id)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("delete %q: %v", tc.id, err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v for %q, got %v", tc.wantErr, tc.id, err)
			}
		})
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the save dir was touched: %v", err)
	}
}
