package component

import "testing"

func TestActionsFrozenComposes(t *testing.T) {
	var f ActionsFrozen
	if f.IsFrozen() {
		t.Fatalf("zero value must not be frozen")
	}

	f.Freeze()
	f.Freeze()
	f.Unfreeze()
	if !f.IsFrozen() {
		t.Fatalf("one of two freezes released, still expected frozen")
	}
	f.Unfreeze()
	if f.IsFrozen() {
		t.Fatalf("all freezes released, expected unfrozen")
	}
}

func TestActionsFrozenUnfreezeSaturates(t *testing.T) {
	var f ActionsFrozen
	f.Unfreeze()
	f.Unfreeze()
	if f.Count() != 0 {
		t.Fatalf("count went below zero: %d", f.Count())
	}
	f.Freeze()
	if !f.IsFrozen() {
		t.Fatalf("a single freeze after extra unfreezes must freeze")
	}
}

func TestNilActionsFrozenReadsUnfrozen(t *testing.T) {
	var f *ActionsFrozen
	if f.IsFrozen() || f.Count() != 0 {
		t.Fatalf("nil counter should read as unfrozen")
	}
}
