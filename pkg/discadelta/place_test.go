package discadelta

import (
	"math"
	"testing"
)

// setDistances assigns pre-solved main-axis distances directly to a set of
// leaf children of root, bypassing Solve, so Place can be tested in
// isolation from distribution.
func linkWithDistance(t *testing.T, root *Node, name string, order int, distance float64) *Node {
	t.Helper()
	n := Create(Config{Name: name, Base: Flat(distance), Max: math.Inf(1), Order: order})
	if err := Link(n, root); err != nil {
		t.Fatalf("Link(%s) = %v", name, err)
	}
	n.content.Distance = distance
	return n
}

func TestPlaceOrdersByConfigOrder(t *testing.T) {
	root := Create(Config{Name: "root", Max: math.Inf(1)})
	first := linkWithDistance(t, root, "first", 2, 100)
	second := linkWithDistance(t, root, "second", 0, 200)
	third := linkWithDistance(t, root, "third", 1, 300)

	Place(root, 0, false)

	if !closeEnough(second.Content().Offset, 0) {
		t.Errorf("second (order 0) offset = %v, want 0", second.Content().Offset)
	}
	if !closeEnough(third.Content().Offset, 200) {
		t.Errorf("third (order 1) offset = %v, want 200", third.Content().Offset)
	}
	if !closeEnough(first.Content().Offset, 500) {
		t.Errorf("first (order 2) offset = %v, want 500", first.Content().Offset)
	}
}

func TestPlaceStableForEqualOrder(t *testing.T) {
	root := Create(Config{Name: "root", Max: math.Inf(1)})
	a := linkWithDistance(t, root, "a", 0, 10)
	b := linkWithDistance(t, root, "b", 0, 20)
	c := linkWithDistance(t, root, "c", 0, 30)

	Place(root, 0, false)

	// Equal Order falls back to insertion order (stable sort).
	if !closeEnough(a.Content().Offset, 0) {
		t.Errorf("a.Offset = %v, want 0", a.Content().Offset)
	}
	if !closeEnough(b.Content().Offset, 10) {
		t.Errorf("b.Offset = %v, want 10", b.Content().Offset)
	}
	if !closeEnough(c.Content().Offset, 30) {
		t.Errorf("c.Offset = %v, want 30", c.Content().Offset)
	}
}

func TestPlaceAppliesOriginToRootOnly(t *testing.T) {
	root := Create(Config{Name: "root", Max: math.Inf(1)})
	a := linkWithDistance(t, root, "a", 0, 50)

	Place(root, 1000, false)

	if !closeEnough(root.Content().Offset, 1000) {
		t.Errorf("root.Offset = %v, want 1000", root.Content().Offset)
	}
	// Children are positioned relative to their parent, not the root's
	// absolute origin.
	if !closeEnough(a.Content().Offset, 0) {
		t.Errorf("a.Offset = %v, want 0 (relative to root)", a.Content().Offset)
	}
}

func TestPlaceRoundingPreservesTotalAndOrder(t *testing.T) {
	root := Create(Config{Name: "root", Max: math.Inf(1)})
	a := linkWithDistance(t, root, "a", 0, 33.33)
	b := linkWithDistance(t, root, "b", 1, 33.33)
	c := linkWithDistance(t, root, "c", 2, 33.34)

	Place(root, 0, true)

	wantOffsets := []float64{0, 33, 67}
	wantDistances := []float64{33, 34, 33}
	got := []*Node{a, b, c}
	for i, n := range got {
		if !closeEnough(n.Content().Offset, wantOffsets[i]) {
			t.Errorf("%s.Offset = %v, want %v", n.Name(), n.Content().Offset, wantOffsets[i])
		}
		if !closeEnough(n.Content().Distance, wantDistances[i]) {
			t.Errorf("%s.Distance = %v, want %v", n.Name(), n.Content().Distance, wantDistances[i])
		}
	}

	lastEnd := c.Content().Offset + c.Content().Distance
	if !closeEnough(lastEnd, 100) {
		t.Errorf("rounded total = %v, want 100 (edge-preserving)", lastEnd)
	}
	// Rounding never reorders or leaves a gap/overlap between siblings.
	if !closeEnough(a.Content().Offset+a.Content().Distance, b.Content().Offset) {
		t.Errorf("gap/overlap between a and b: a ends at %v, b starts at %v",
			a.Content().Offset+a.Content().Distance, b.Content().Offset)
	}
	if !closeEnough(b.Content().Offset+b.Content().Distance, c.Content().Offset) {
		t.Errorf("gap/overlap between b and c: b ends at %v, c starts at %v",
			b.Content().Offset+b.Content().Distance, c.Content().Offset)
	}
}

func TestPlaceRecursesIntoChildren(t *testing.T) {
	root := Create(Config{Name: "root", Max: math.Inf(1)})
	mid := linkWithDistance(t, root, "mid", 0, 100)
	leaf := linkWithDistance(t, mid, "leaf", 0, 40)

	Place(root, 0, false)

	if !closeEnough(mid.Content().Offset, 0) {
		t.Errorf("mid.Offset = %v, want 0", mid.Content().Offset)
	}
	if !closeEnough(leaf.Content().Offset, 0) {
		t.Errorf("leaf.Offset = %v, want 0 (relative to mid)", leaf.Content().Offset)
	}
}
