package dialog

import (
	"errors"
	"testing"
)

const keeper = `
id: keeper
start: greet
nodes:
  greet:
    speaker: Keeper
    text: Evening.
    choices:
      - text: Who are you?
        next: who
        if: flag("met") == 0
        set: {met: 1}
      - text: Back again.
        next: again
        if: flag("met") > 0
      - text: Goodbye.
        next: end
  who:
    speaker: Keeper
    text: I keep the lamps.
    next: end
  again:
    speaker: Keeper
    text: So you are.
`

func TestParseAndAvailable(t *testing.T) {
	tree, err := Parse([]byte(keeper))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	greet, ok := tree.Node(tree.Start)
	if !ok {
		t.Fatalf("missing start node")
	}

	tests := []struct {
		name  string
		flags map[string]int
		want  []int
	}{
		{"first_meeting", nil, []int{0, 2}},
		{"returning", map[string]int{"met": 1}, []int{1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := greet.Available(tc.flags)
			if err != nil {
				t.Fatalf("available: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad_start", "id: x\nstart: nowhere\nnodes:\n  a: {text: hi}\n", ErrUnknownNode},
		{"dangling_next", "id: x\nstart: a\nnodes:\n  a: {text: hi, next: b}\n", ErrUnknownNode},
		{"no_id", "start: a\nnodes:\n  a: {text: hi}\n", nil},
		{"bad_condition", "id: x\nstart: a\nnodes:\n  a:\n    text: hi\n    choices:\n      - {text: c, if: \"flag(\"}\n", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLibrary(t *testing.T) {
	tree, err := Parse([]byte(keeper))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lib, err := NewLibrary(tree)
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	if _, err := lib.Tree("keeper"); err != nil {
		t.Fatalf("expected keeper: %v", err)
	}
	if _, err := lib.Tree("ghost"); !errors.Is(err, ErrUnknownTree) {
		t.Fatalf("expected ErrUnknownTree, got %v", err)
	}
}
