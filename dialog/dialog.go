// Package dialog holds conversation trees: nodes of lines with optional
// numbered choices, gated by tengo conditions over dialog flags.
package dialog

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// End is the node id that closes a conversation.
const End = "end"

var (
	ErrUnknownTree = errors.New("dialog: unknown tree")
	ErrUnknownNode = errors.New("dialog: unknown node")
)

type Choice struct {
	Text string         `yaml:"text"`
	Next string         `yaml:"next"`
	If   string         `yaml:"if"`
	Set  map[string]int `yaml:"set"`

	cond *Condition
}

type Node struct {
	Speaker string         `yaml:"speaker"`
	Text    string         `yaml:"text"`
	Next    string         `yaml:"next"`
	Set     map[string]int `yaml:"set"`
	Choices []Choice       `yaml:"choices"`
}

type Tree struct {
	ID    string           `yaml:"id"`
	Start string           `yaml:"start"`
	Nodes map[string]*Node `yaml:"nodes"`
}

// Parse decodes and validates a tree, compiling every choice condition.
func Parse(data []byte) (*Tree, error) {
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("dialog: unmarshal: %w", err)
	}
	if t.ID == "" {
		return nil, errors.New("dialog: tree has no id")
	}
	if _, ok := t.Nodes[t.Start]; !ok {
		return nil, fmt.Errorf("dialog: %s: start %q: %w", t.ID, t.Start, ErrUnknownNode)
	}

	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := t.Nodes[id]
		if n == nil {
			return nil, fmt.Errorf("dialog: %s: node %q is empty", t.ID, id)
		}
		if len(n.Choices) > 10 {
			return nil, fmt.Errorf("dialog: %s: node %q has %d choices, at most 10 fit the number keys", t.ID, id, len(n.Choices))
		}
		if err := t.checkNext(id, n.Next); err != nil {
			return nil, err
		}
		for i := range n.Choices {
			c := &n.Choices[i]
			if err := t.checkNext(id, c.Next); err != nil {
				return nil, err
			}
			if c.If == "" {
				continue
			}
			cond, err := Compile(c.If)
			if err != nil {
				return nil, fmt.Errorf("dialog: %s: node %q choice %d: %w", t.ID, id, i+1, err)
			}
			c.cond = cond
		}
	}
	return &t, nil
}

func (t *Tree) checkNext(from, next string) error {
	if next == "" || next == End {
		return nil
	}
	if _, ok := t.Nodes[next]; !ok {
		return fmt.Errorf("dialog: %s: node %q points at %q: %w", t.ID, from, next, ErrUnknownNode)
	}
	return nil
}

func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Available returns the indices of choices whose condition holds.
func (n *Node) Available(flags map[string]int) ([]int, error) {
	out := make([]int, 0, len(n.Choices))
	for i, c := range n.Choices {
		if c.cond == nil {
			out = append(out, i)
			continue
		}
		ok, err := c.cond.Eval(flags)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// Library indexes trees by id.
type Library struct {
	trees map[string]*Tree
}

func NewLibrary(trees ...*Tree) (*Library, error) {
	l := &Library{trees: make(map[string]*Tree, len(trees))}
	for _, t := range trees {
		if err := l.Put(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Put adds or replaces a tree.
func (l *Library) Put(t *Tree) error {
	if t == nil || t.ID == "" {
		return errors.New("dialog: library: tree without id")
	}
	l.trees[t.ID] = t
	return nil
}

func (l *Library) Tree(id string) (*Tree, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTree, id)
	}
	t, ok := l.trees[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTree, id)
	}
	return t, nil
}
