package discadelta

// SolveOptions configures one Solve call. TargetCross and HasTargetCross
// are read only for two-dimensional trees; leaving HasTargetCross false
// is correct for a purely one-dimensional tree, and also for a 2D root
// whose own cross size should resolve naturally from its CrossBase
// declaration rather than be imposed from outside.
type SolveOptions struct {
	TargetMain float64

	TargetCross    float64
	HasTargetCross bool

	OriginMain  float64
	OriginCross float64

	Round bool
}

// Solve resolves every node's Content under root, given a target size for
// root's own main axis (and, optionally, an externally imposed cross
// size). It runs Auto resolution, distribution, and placement in one pass
// and completes synchronously; there is nothing to cancel or await.
func Solve(root *Node, opts SolveOptions) {
	rootCrossAxis := crossAxisOf(root.config.Direction)

	var rootCross float64
	if opts.HasTargetCross {
		rootCross = clamp(opts.TargetCross, root.config.CrossMin, root.config.CrossMax)
	} else {
		rootCross = resolveCross(root, rootCrossAxis)
	}

	mainAxisAbs := mainAxisOf(root.config.Direction)
	solveNode(root, opts.TargetMain, rootCross, mainAxisAbs)
	place(root, opts.OriginMain, opts.Round)
	writeDimensions(root, mainAxisAbs, opts.OriginCross)
}

// solveNode resolves n's own Content against mainTarget and crossSize,
// then distributes n's main-axis extent across its children and recurses.
// mainAxisAbs is the absolute axis (width or height) that mainTarget and
// n.content.Distance are measured along — n's parent's main axis, or, at
// the root, root's own main axis by convention. Auto resolution for the
// main axis falls out of the incrementally maintained accumulateBase
// aggregate; the cross axis has no such cache and is resolved fresh per
// child via resolveCross.
func solveNode(n *Node, mainTarget, crossSize float64, mainAxisAbs axis) {
	n.content.Base = effectiveBase(n)
	n.content.Distance = clamp(mainTarget, n.config.Min, n.config.Max)
	if n.content.Distance > n.content.Base {
		n.content.ExpandDelta = n.content.Distance - n.content.Base
	} else {
		n.content.ExpandDelta = 0
	}
	n.resolvedCross = crossSize

	if len(n.children) == 0 {
		return
	}

	// n's own main axis may differ from mainAxisAbs when n's Direction
	// flips relative to its parent's (e.g. a Column nested in a Row): in
	// that case n.content.Distance holds n's size along its parent's main
	// axis, which is n's own *cross* axis, so the budget to split across
	// n's children along n's own main axis is n.resolvedCross instead.
	ownMainAxis := mainAxisOf(n.config.Direction)
	total := n.content.Distance
	if ownMainAxis != mainAxisAbs {
		total = n.resolvedCross
	}

	contributions := make([]contribution, len(n.children))
	for i, c := range n.children {
		contributions[i] = newContribution(effectiveBase(c), c.config.FlexCompress, c.config.FlexExpand, c.config.Min, c.config.Max)
	}
	distances := distribute(total, contributions)

	crossAxis := crossAxisOf(n.config.Direction)
	for i, c := range n.children {
		solveNode(c, distances[i], resolveCross(c, crossAxis), ownMainAxis)
	}
}

// resolveCross returns c's size along axis, which is c's cross axis as
// seen from its parent. A Flat cross length is clamped to
// [CrossMin, CrossMax]; an Auto one is the natural size of c's own
// subtree along axis, computed recursively from the declared lengths of
// c's descendants (never from the cached main-axis aggregates, which
// track a different axis whenever a subtree alternates Row/Column) —
// falling back to the declared fallback when c is a leaf with nothing to
// size itself from.
func resolveCross(c *Node, axis axis) float64 {
	return resolveLength(c.config.CrossBase, c.config.CrossMin, c.config.CrossMax, c, axis)
}

// resolveLength clamps length's resolved value to [min, max]: the literal
// Flat value, or — for an Auto length — the natural size of c's own
// subtree along axis, falling back to the declared fallback when c has
// no children to size itself from.
func resolveLength(length Length, min, max float64, c *Node, axis axis) float64 {
	if !length.IsAuto() || len(c.children) == 0 {
		return clamp(length.fallback, min, max)
	}
	return clamp(naturalSize(c, axis), min, max)
}

// naturalSize computes n's size along axis from its subtree's declared
// lengths, recursively. If axis is n's own main axis (per n.Direction),
// the result is the sum of children's lengths along axis (mirroring how
// accumulateBase is built, but for an arbitrary axis rather than only
// n's main one). Otherwise axis is n's cross axis, and the result is the
// max over children's lengths along axis — siblings never stretch each
// other on the cross axis.
func naturalSize(n *Node, axis axis) float64 {
	if len(n.children) == 0 {
		return 0
	}

	isMain := axis == mainAxisOf(n.config.Direction)
	total, greatest := 0.0, 0.0
	for _, c := range n.children {
		v := lengthAlong(c, axis, isMain)
		if isMain {
			total += v
		} else {
			greatest = maxOf(greatest, v)
		}
	}
	if isMain {
		return total
	}
	return greatest
}

// lengthAlong returns c's resolved length along axis, where isMainForC
// reports whether axis is the main axis of c's parent (so c's Base
// fields apply) or the cross axis (so c's CrossBase fields apply).
func lengthAlong(c *Node, axis axis, isMainForC bool) float64 {
	length, min, max := c.config.Base, c.config.Min, c.config.Max
	if !isMainForC {
		length, min, max = c.config.CrossBase, c.config.CrossMin, c.config.CrossMax
	}
	return resolveLength(length, min, max, c, axis)
}

// writeDimensions projects each node's resolved Distance/resolvedCross
// and Offset into the absolute Width/Height/X/Y fields, given the
// absolute axis that is n's own main axis as seen by its parent (root has
// no parent, so by convention its own Direction decides which absolute
// axis TargetMain addressed) and n's position on its parent's cross axis
// (always 0 for a non-root node — children are never offset on the
// cross axis — and the Solve caller's OriginCross for root itself).
func writeDimensions(n *Node, mainAxis axis, crossOffset float64) {
	if mainAxis == width {
		n.content.Width = n.content.Distance
		n.content.Height = n.resolvedCross
		n.content.X = n.content.Offset
		n.content.Y = crossOffset
	} else {
		n.content.Height = n.content.Distance
		n.content.Width = n.resolvedCross
		n.content.Y = n.content.Offset
		n.content.X = crossOffset
	}

	childMain := mainAxisOf(n.config.Direction)
	for _, c := range n.children {
		writeDimensions(c, childMain, 0)
	}
}
