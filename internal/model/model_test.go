package model

import "testing"

func TestFarmRestrictionLifecycle(t *testing.T) {
	f := NewFarm("F1", 100)
	f.LastPositiveTestDate = 100
	f.NumClearTests = 0
	f.Restricted = true

	f.AddClearTest(160, 2)
	if f.NumClearTests != 1 || f.NextWHTDate != 220 || !f.Restricted {
		t.Fatalf("after first clear test: numClearTests=%d nextWHT=%d restricted=%v", f.NumClearTests, f.NextWHTDate, f.Restricted)
	}

	f.AddClearTest(220, 2)
	if f.NumClearTests != -1 || f.Restricted || f.NextWHTDate != 220+365*2 {
		t.Fatalf("after second clear test: numClearTests=%d nextWHT=%d restricted=%v", f.NumClearTests, f.NextWHTDate, f.Restricted)
	}
}

func TestFarmSetLastPositiveTestDate(t *testing.T) {
	f := NewFarm("F1", 50)
	f.SetLastPositiveTestDate(42)
	if !f.Restricted || f.NumClearTests != 0 || f.NextWHTDate != 102 || f.LastPositiveTestDate != 42 {
		t.Fatalf("unexpected state after SetLastPositiveTestDate: %+v", f)
	}
}

func TestSNPSymmetricDistance(t *testing.T) {
	a := NewSNPSet(1, 2, 3)
	b := NewSNPSet(2, 3, 4)
	if got := a.SymmetricDistance(b); got != 2 {
		t.Fatalf("SymmetricDistance = %d, want 2", got)
	}
	if got := b.SymmetricDistance(a); got != 2 {
		t.Fatalf("SymmetricDistance should be symmetric, got %d", got)
	}
	if got := a.SymmetricDistance(a.Clone()); got != 0 {
		t.Fatalf("distance to an equal set should be 0, got %d", got)
	}
}

func TestInfectionTreeReparentsOnRemove(t *testing.T) {
	tree := NewInfectionTree()
	cow1 := CowNode("Cow_00001")
	cow2 := CowNode("Cow_00002")
	cow3 := CowNode("Cow_00003")

	if err := tree.Insert(Root, cow1); err != nil {
		t.Fatalf("insert cow1: %v", err)
	}
	if err := tree.Insert(cow1, cow2); err != nil {
		t.Fatalf("insert cow2: %v", err)
	}
	if err := tree.Insert(cow1, cow3); err != nil {
		t.Fatalf("insert cow3: %v", err)
	}

	if err := tree.Remove(cow1); err != nil {
		t.Fatalf("remove cow1: %v", err)
	}

	for _, child := range []Node{cow2, cow3} {
		parent, ok := tree.Parent(child)
		if !ok || parent != Root {
			t.Fatalf("expected %v reparented to root, got parent=%v ok=%v", child, parent, ok)
		}
	}
	if tree.Contains(cow1) {
		t.Fatalf("cow1 should have been removed from the tree")
	}
}

func TestInfectionTreeGetInfectedCows(t *testing.T) {
	tree := NewInfectionTree()
	cow1 := CowNode("Cow_00001")
	badger1 := BadgerNode("Badger_00001")
	tree.Insert(Root, cow1)
	tree.Insert(cow1, badger1)

	cows := tree.InfectedCows()
	if len(cows) != 1 || cows[0] != cow1 {
		t.Fatalf("InfectedCows() = %v, want [%v]", cows, cow1)
	}
}
