package discadelta

import (
	"github.com/Putcho1994/Discadelta/pkg/errors"
)

// Node is an owned handle to one element of a layout tree. A Node has at
// most one parent and an ordered list of children (insertion order). Nodes
// are created independently; [Link] attaches a node to a parent, [Unlink]
// detaches it. Destroying a parent (dropping all references to it) does
// not destroy its children — they become detached roots, since all
// parent/child references here are non-owning.
type Node struct {
	config  Config
	content Content

	parent   *Node
	children []*Node
	depth    int

	// Cached aggregates over the subtree, maintained incrementally by Link
	// and Unlink. accumulateBase is the one aggregate that chains
	// recursively through Auto ancestors (it feeds effectiveBase); the
	// others are single-level sums over direct children, since nothing in
	// Distribute or Solve consumes anything deeper. greaterBase/greaterMin
	// are true subtree-wide maxima: Link raises the parent's and recomputes
	// every higher ancestor's from scratch, and Unlink recomputes the
	// parent's and every ancestor's, since max is not delta-invertible.
	accumulateBase        float64
	accumulateMin         float64
	accumulateExpandRatio float64
	compressSolidify      float64
	compressCapacity      float64
	greaterBase           float64
	greaterMin            float64

	// resolvedCross is the node's last-solved size along its parent's
	// cross axis. It is solver-internal scratch state, not part of
	// Content, because it is keyed to whichever absolute axis (width or
	// height) the parent's cross axis happened to be for that solve;
	// Solve projects it into Content.Width/Height once the whole tree is
	// resolved.
	resolvedCross float64
}

// Create validates and normalizes cfg and returns a new, unlinked Node.
// Normalization clamps Min to >= 0, Max to >= Min, a Flat Base (or an
// Auto fallback) to [Min, Max], and flex weights to >= 0. This is
// intentional: the engine is robust to malformed upstream configuration
// rather than erroring on it.
func Create(cfg Config) *Node {
	cfg = normalizeConfig(cfg)
	n := &Node{config: cfg}
	n.content.Base = effectiveBaseOf(cfg, 0, false)
	n.content.Distance = n.content.Base
	return n
}

func normalizeConfig(cfg Config) Config {
	cfg.Min = maxOf(0, cfg.Min)
	cfg.Max = maxOf(cfg.Min, cfg.Max)
	cfg.Base = Length{auto: cfg.Base.auto, fallback: clamp(cfg.Base.fallback, cfg.Min, cfg.Max)}
	cfg.FlexCompress = maxOf(0, cfg.FlexCompress)
	cfg.FlexExpand = maxOf(0, cfg.FlexExpand)

	cfg.CrossMin = maxOf(0, cfg.CrossMin)
	cfg.CrossMax = maxOf(cfg.CrossMin, cfg.CrossMax)
	cfg.CrossBase = Length{auto: cfg.CrossBase.auto, fallback: clamp(cfg.CrossBase.fallback, cfg.CrossMin, cfg.CrossMax)}
	return cfg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Config returns the node's immutable declaration.
func (n *Node) Config() Config { return n.config }

// Content returns the node's last-solved output.
func (n *Node) Content() Content { return n.content }

// Name is a convenience accessor for Config().Name.
func (n *Node) Name() string { return n.config.Name }

// Parent returns the node's parent, or nil if it is a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in insertion order. The returned
// slice is owned by the node; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Depth is the number of ancestors between this node and its root.
func (n *Node) Depth() int { return n.depth }

// SetOrder updates the node's placement order. Unlike other Config fields,
// Order carries no aggregate dependency and may be changed freely on a
// linked node; re-run [Place] (or [Solve]) to reflect the change.
func (n *Node) SetOrder(order int) { n.config.Order = order }

// AccumulateBase returns the sum of this node's direct children's
// effective main-axis bases (each resolved recursively through any Auto
// chain).
func (n *Node) AccumulateBase() float64 { return n.accumulateBase }

// AccumulateMin returns the sum of this node's direct children's Min.
func (n *Node) AccumulateMin() float64 { return n.accumulateMin }

// AccumulateExpandRatio returns the sum of this node's direct children's
// FlexExpand.
func (n *Node) AccumulateExpandRatio() float64 { return n.accumulateExpandRatio }

// GreaterBase returns the maximum effective base across the entire
// subtree rooted at this node's children.
func (n *Node) GreaterBase() float64 { return n.greaterBase }

// GreaterMin returns the maximum Min across the entire subtree rooted at
// this node's children.
func (n *Node) GreaterMin() float64 { return n.greaterMin }

// CompressSolidify returns the sum of this node's direct children's
// solidify portions (the part of each child's base that resists
// compression).
func (n *Node) CompressSolidify() float64 { return n.compressSolidify }

// CompressCapacity returns the sum of this node's direct children's
// compressible capacity.
func (n *Node) CompressCapacity() float64 { return n.compressCapacity }

// effectiveBase is the main-axis base Distribute/aggregate maintenance
// should use for n: the literal Flat value, or — for an Auto node — the
// accumulated base of its own children, falling back to the Auto length's
// declared fallback when n is a leaf with no children to accumulate.
func effectiveBase(n *Node) float64 {
	return effectiveBaseOf(n.config, n.accumulateBase, len(n.children) > 0)
}

func effectiveBaseOf(cfg Config, accumulateBase float64, hasChildren bool) float64 {
	if !cfg.Base.IsAuto() || !hasChildren {
		return clamp(cfg.Base.fallback, cfg.Min, cfg.Max)
	}
	return clamp(accumulateBase, cfg.Min, cfg.Max)
}

// Link attaches child to parent, appending it to parent's ordered
// children. If child already has a parent, it is unlinked first. Link
// fails with an [errors.Error] of code [errors.ErrCodeCycle] if parent is
// already in child's subtree; the tree is left unchanged in that case.
func Link(child, parent *Node) error {
	if child == nil || parent == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "link: child and parent must not be nil")
	}
	if child == parent || isAncestor(child, parent) {
		return errors.New(errors.ErrCodeCycle, "link: %s is already an ancestor of %s", child.Name(), parent.Name())
	}

	if child.parent != nil {
		Unlink(child)
	}

	parent.children = append(parent.children, child)
	child.parent = parent
	setDepth(child, parent.depth+1)

	propagateLink(parent, child)
	return nil
}

// isAncestor reports whether candidate is an ancestor of n (equivalently,
// whether n is in candidate's subtree). Linking child under a descendant
// of child would create a cycle, which is exactly the condition
// isAncestor(child, parent) checks for.
func isAncestor(candidate, n *Node) bool {
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur == candidate {
			return true
		}
	}
	return false
}

func setDepth(n *Node, depth int) {
	n.depth = depth
	for _, c := range n.children {
		setDepth(c, depth+1)
	}
}

// propagateLink adjusts parent's aggregates (and, transitively, its own
// ancestors, when parent's effective base itself changes) to account for
// the newly linked child.
func propagateLink(parent, child *Node) {
	childBase := effectiveBase(child)

	parent.accumulateMin += child.config.Min
	parent.accumulateExpandRatio += child.config.FlexExpand
	parent.compressCapacity += childBase * child.config.FlexCompress
	parent.compressSolidify += maxOf(0, childBase-childBase*child.config.FlexCompress)
	parent.greaterBase = maxOf(parent.greaterBase, childBase, child.greaterBase)
	parent.greaterMin = maxOf(parent.greaterMin, child.config.Min, child.greaterMin)

	// child is already appended to parent.children by the time this runs,
	// so len(parent.children) > 1 means parent had other children before
	// this one; if not, parent was a leaf and oldEffective must still use
	// its Auto fallback rather than the not-yet-incremented accumulateBase.
	hadOtherChildren := len(parent.children) > 1
	oldEffective := effectiveBaseOf(parent.config, parent.accumulateBase, hadOtherChildren)
	parent.accumulateBase += childBase
	newEffective := effectiveBase(parent)

	if grandparent := parent.parent; grandparent != nil && newEffective != oldEffective {
		propagateBaseDelta(grandparent, newEffective-oldEffective)
	}
	for a := parent.parent; a != nil; a = a.parent {
		recomputeGreaters(a)
	}
}

// propagateBaseDelta adds delta to ancestor's accumulateBase to reflect a
// change in child's effective base, and keeps walking upward while the
// change keeps altering each ancestor's own effective base (which only
// happens through an unbroken chain of Auto nodes).
func propagateBaseDelta(ancestor *Node, delta float64) {
	for a := ancestor; a != nil; {
		old := effectiveBase(a)
		a.accumulateBase += delta
		newv := effectiveBase(a)
		if newv == old {
			return
		}
		delta = newv - old
		a = a.parent
	}
}

// Unlink detaches n from its parent and reverses the aggregate
// contributions Link made. greaterBase/greaterMin are not
// delta-invertible (max has no inverse), so they are recomputed from the
// parent's surviving children.
func Unlink(n *Node) {
	parent := n.parent
	if parent == nil {
		return
	}

	idx := -1
	for i, c := range parent.children {
		if c == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	parent.children = append(parent.children[:idx:idx], parent.children[idx+1:]...)
	n.parent = nil
	setDepth(n, 0)

	childBase := effectiveBase(n)
	parent.accumulateMin -= n.config.Min
	parent.accumulateExpandRatio -= n.config.FlexExpand
	parent.compressCapacity -= childBase * n.config.FlexCompress
	parent.compressSolidify -= maxOf(0, childBase-childBase*n.config.FlexCompress)

	// n has already been removed from parent.children, so oldEffective
	// must be computed as if n were still present (parent was never a
	// leaf while n was its child) before accumulateBase drops n's share.
	oldEffective := effectiveBaseOf(parent.config, parent.accumulateBase, true)
	parent.accumulateBase -= childBase
	newEffective := effectiveBase(parent)

	recomputeGreaters(parent)

	if grandparent := parent.parent; grandparent != nil && newEffective != oldEffective {
		propagateBaseDelta(grandparent, newEffective-oldEffective)
	}
	for a := parent.parent; a != nil; a = a.parent {
		recomputeGreaters(a)
	}
}

// recomputeGreaters rebuilds n's greaterBase/greaterMin from its
// surviving children's effective bases, Mins, and own greater* fields. It
// does not recurse; Link and Unlink call it on each affected ancestor from
// the bottom up, so every call sees children whose greater* are current.
func recomputeGreaters(n *Node) {
	n.greaterBase = 0
	n.greaterMin = 0
	for _, c := range n.children {
		base := effectiveBase(c)
		n.greaterBase = maxOf(n.greaterBase, base, c.greaterBase)
		n.greaterMin = maxOf(n.greaterMin, c.config.Min, c.greaterMin)
	}
}

// maxOf returns the largest of the given values; used for the multi-way
// comparisons greater* aggregates require.
func maxOf(a float64, rest ...float64) float64 {
	m := a
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}
