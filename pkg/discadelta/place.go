package discadelta

import (
	"math"
	"sort"
)

// Place assigns main-axis offsets to every node under root. With round
// false it changes nothing but Offset; with round true it also rewrites
// each child's Distance to the span between its rounded edges. It is safe to call standalone after only
// [Node.SetOrder] changes, without a full [Solve], since placement has no
// dependency on the distributor's output beyond the already-solved
// Distance values.
func Place(root *Node, originMain float64, round bool) {
	place(root, originMain, round)
}

func place(root *Node, originMain float64, round bool) {
	root.content.Offset = originMain
	placeChildren(root, round)
}

// placeChildren sorts n's children by declared Order (stable —
// insertion order breaks ties), sweeps the main axis assigning each a
// relative-to-parent Offset, then recurses into every child regardless
// of whether it has children of its own.
func placeChildren(n *Node, round bool) {
	if len(n.children) == 0 {
		return
	}

	ordered := make([]*Node, len(n.children))
	copy(ordered, n.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].config.Order < ordered[j].config.Order
	})

	running := 0.0
	for _, c := range ordered {
		c.content.Offset = running
		running += c.content.Distance
	}

	if round {
		roundOffsets(ordered)
	}

	for _, c := range n.children {
		placeChildren(c, round)
	}
}

// roundOffsets rounds each child's end position (offset + distance)
// independently to the nearest integer, then derives offset and distance
// from consecutive rounded ends. This keeps the parent's total span
// exact under rounding — the first child's start and the last child's
// end land on the same integers they would without rounding — at the
// cost of each individual child's distance drifting by at most one unit.
func roundOffsets(ordered []*Node) {
	prevEnd := 0.0
	for _, c := range ordered {
		end := c.content.Offset + c.content.Distance
		roundedEnd := math.Round(end)
		c.content.Offset = prevEnd
		c.content.Distance = roundedEnd - prevEnd
		prevEnd = roundedEnd
	}
}
