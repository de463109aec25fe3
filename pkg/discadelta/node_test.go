package discadelta

import (
	"math"
	"testing"

	"github.com/Putcho1994/Discadelta/pkg/errors"
)

func leafConfig(name string, base, min, max, flexCompress, flexExpand float64) Config {
	return Config{
		Name:         name,
		Base:         Flat(base),
		Min:          min,
		Max:          max,
		FlexCompress: flexCompress,
		FlexExpand:   flexExpand,
	}
}

func TestLinkRejectsNilArgs(t *testing.T) {
	n := Create(leafConfig("a", 10, 0, math.Inf(1), 1, 1))
	if err := Link(nil, n); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Link(nil, n) = %v, want INVALID_CONFIG", err)
	}
	if err := Link(n, nil); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Link(n, nil) = %v, want INVALID_CONFIG", err)
	}
}

func TestLinkRejectsSelfAndCycle(t *testing.T) {
	a := Create(leafConfig("a", 10, 0, math.Inf(1), 1, 1))
	if err := Link(a, a); !errors.Is(err, errors.ErrCodeCycle) {
		t.Errorf("Link(a, a) = %v, want CYCLE", err)
	}

	b := Create(leafConfig("b", 10, 0, math.Inf(1), 1, 1))
	c := Create(leafConfig("c", 10, 0, math.Inf(1), 1, 1))
	if err := Link(b, a); err != nil {
		t.Fatalf("Link(b, a) = %v, want nil", err)
	}
	if err := Link(c, b); err != nil {
		t.Fatalf("Link(c, b) = %v, want nil", err)
	}
	// a -> b -> c; linking a under c would create a cycle.
	if err := Link(a, c); !errors.Is(err, errors.ErrCodeCycle) {
		t.Errorf("Link(a, c) = %v, want CYCLE", err)
	}
}

func TestLinkRelinksFromPreviousParent(t *testing.T) {
	p1 := Create(leafConfig("p1", 0, 0, math.Inf(1), 1, 1))
	p2 := Create(leafConfig("p2", 0, 0, math.Inf(1), 1, 1))
	child := Create(leafConfig("child", 50, 0, math.Inf(1), 1, 1))

	if err := Link(child, p1); err != nil {
		t.Fatalf("Link(child, p1) = %v", err)
	}
	if len(p1.Children()) != 1 {
		t.Fatalf("p1 should have 1 child, got %d", len(p1.Children()))
	}

	if err := Link(child, p2); err != nil {
		t.Fatalf("Link(child, p2) = %v", err)
	}
	if len(p1.Children()) != 0 {
		t.Errorf("p1 should have 0 children after re-link, got %d", len(p1.Children()))
	}
	if len(p2.Children()) != 1 {
		t.Errorf("p2 should have 1 child, got %d", len(p2.Children()))
	}
	if child.Parent() != p2 {
		t.Errorf("child.Parent() = %v, want p2", child.Parent())
	}
}

func TestDepthTracksLinkUnlink(t *testing.T) {
	root := Create(leafConfig("root", 0, 0, math.Inf(1), 1, 1))
	mid := Create(leafConfig("mid", 0, 0, math.Inf(1), 1, 1))
	leaf := Create(leafConfig("leaf", 10, 0, math.Inf(1), 1, 1))

	_ = Link(mid, root)
	_ = Link(leaf, mid)

	if root.Depth() != 0 || mid.Depth() != 1 || leaf.Depth() != 2 {
		t.Errorf("depths = %d,%d,%d, want 0,1,2", root.Depth(), mid.Depth(), leaf.Depth())
	}

	Unlink(mid)
	if mid.Depth() != 0 {
		t.Errorf("unlinked mid.Depth() = %d, want 0", mid.Depth())
	}
	if leaf.Depth() != 1 {
		t.Errorf("leaf.Depth() after detaching mid = %d, want 1", leaf.Depth())
	}
}

// aggregatesMatchChildren asserts invariant 6: after any sequence of
// Link/Unlink, a node's accumulate_* fields equal the resolved sum (or max,
// for greater*) over its current direct children.
func aggregatesMatchChildren(t *testing.T, n *Node) {
	t.Helper()
	var wantBase, wantMin, wantRatio, wantSolidify, wantCapacity float64
	var wantGreaterBase, wantGreaterMin float64
	for _, c := range n.Children() {
		base := effectiveBase(c)
		wantBase += base
		wantMin += c.Config().Min
		wantRatio += c.Config().FlexExpand
		capacity := base * c.Config().FlexCompress
		wantCapacity += capacity
		wantSolidify += maxOf(0, base-capacity)
		wantGreaterBase = maxOf(wantGreaterBase, base, c.GreaterBase())
		wantGreaterMin = maxOf(wantGreaterMin, c.Config().Min, c.GreaterMin())
	}

	if !closeEnough(n.AccumulateBase(), wantBase) {
		t.Errorf("%s: AccumulateBase() = %v, want %v", n.Name(), n.AccumulateBase(), wantBase)
	}
	if !closeEnough(n.AccumulateMin(), wantMin) {
		t.Errorf("%s: AccumulateMin() = %v, want %v", n.Name(), n.AccumulateMin(), wantMin)
	}
	if !closeEnough(n.AccumulateExpandRatio(), wantRatio) {
		t.Errorf("%s: AccumulateExpandRatio() = %v, want %v", n.Name(), n.AccumulateExpandRatio(), wantRatio)
	}
	if !closeEnough(n.CompressSolidify(), wantSolidify) {
		t.Errorf("%s: CompressSolidify() = %v, want %v", n.Name(), n.CompressSolidify(), wantSolidify)
	}
	if !closeEnough(n.CompressCapacity(), wantCapacity) {
		t.Errorf("%s: CompressCapacity() = %v, want %v", n.Name(), n.CompressCapacity(), wantCapacity)
	}
	if !closeEnough(n.GreaterBase(), wantGreaterBase) {
		t.Errorf("%s: GreaterBase() = %v, want %v", n.Name(), n.GreaterBase(), wantGreaterBase)
	}
	if !closeEnough(n.GreaterMin(), wantGreaterMin) {
		t.Errorf("%s: GreaterMin() = %v, want %v", n.Name(), n.GreaterMin(), wantGreaterMin)
	}
}

func TestAggregatesAfterLinkUnlinkSequence(t *testing.T) {
	root := Create(leafConfig("root", 0, 0, math.Inf(1), 1, 1))
	a := Create(leafConfig("a", 100, 10, 300, 0.5, 1))
	b := Create(leafConfig("b", 200, 50, 400, 1.0, 2))
	c := Create(leafConfig("c", 50, 0, 100, 0.2, 0.5))

	_ = Link(a, root)
	aggregatesMatchChildren(t, root)

	_ = Link(b, root)
	aggregatesMatchChildren(t, root)

	_ = Link(c, root)
	aggregatesMatchChildren(t, root)

	Unlink(b)
	aggregatesMatchChildren(t, root)

	Unlink(a)
	Unlink(c)
	aggregatesMatchChildren(t, root)
	if len(root.Children()) != 0 {
		t.Errorf("root should have no children left, got %d", len(root.Children()))
	}
}

func TestAggregatesPropagateThroughAutoChain(t *testing.T) {
	grandparent := Create(Config{Name: "gp", Base: Auto(0), Max: math.Inf(1)})
	parent := Create(Config{Name: "p", Base: Auto(0), Max: math.Inf(1)})
	leaf := Create(leafConfig("leaf", 40, 0, math.Inf(1), 1, 1))

	_ = Link(parent, grandparent)
	_ = Link(leaf, parent)

	if !closeEnough(effectiveBase(parent), 40) {
		t.Errorf("parent effective base = %v, want 40", effectiveBase(parent))
	}
	if !closeEnough(effectiveBase(grandparent), 40) {
		t.Errorf("grandparent effective base = %v, want 40 (propagated through Auto chain)", effectiveBase(grandparent))
	}

	other := Create(leafConfig("other", 60, 0, math.Inf(1), 1, 1))
	_ = Link(other, parent)

	if !closeEnough(effectiveBase(grandparent), 100) {
		t.Errorf("grandparent effective base after second leaf = %v, want 100", effectiveBase(grandparent))
	}

	Unlink(leaf)
	if !closeEnough(effectiveBase(grandparent), 60) {
		t.Errorf("grandparent effective base after unlink = %v, want 60", effectiveBase(grandparent))
	}
}

func TestAutoLeafResolvesToFallback(t *testing.T) {
	leaf := Create(Config{Name: "leaf", Base: Auto(50), Min: 0, Max: math.Inf(1)})
	if !closeEnough(leaf.Content().Base, 50) {
		t.Errorf("leaf.Content().Base = %v, want 50 (Auto fallback, no children to accumulate)", leaf.Content().Base)
	}
	if !closeEnough(effectiveBase(leaf), 50) {
		t.Errorf("effectiveBase(leaf) = %v, want 50", effectiveBase(leaf))
	}

	parent := Create(Config{Name: "parent", Base: Auto(0), Max: math.Inf(1)})
	_ = Link(leaf, parent)
	if !closeEnough(effectiveBase(parent), 50) {
		t.Errorf("effectiveBase(parent) = %v, want 50 (accumulated from the now-linked leaf)", effectiveBase(parent))
	}

	Unlink(leaf)
	if !closeEnough(effectiveBase(leaf), 50) {
		t.Errorf("effectiveBase(leaf) after unlink = %v, want 50 (leaf again, falls back)", effectiveBase(leaf))
	}
	if !closeEnough(effectiveBase(parent), 0) {
		t.Errorf("effectiveBase(parent) after unlink = %v, want 0 (parent is a leaf again, its own fallback)", effectiveBase(parent))
	}
}

func TestAutoLeafCrossAxisResolvesToFallback(t *testing.T) {
	leaf := Create(Config{
		Name:      "leaf",
		Base:      Flat(100),
		Max:       math.Inf(1),
		CrossBase: Auto(30),
		CrossMax:  math.Inf(1),
	})
	if !closeEnough(resolveCross(leaf, height), 30) {
		t.Errorf("resolveCross(leaf, height) = %v, want 30 (Auto cross fallback, no children)", resolveCross(leaf, height))
	}
}
