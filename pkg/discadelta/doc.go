// Package discadelta implements a constraint-based one- and two-dimensional
// layout solver.
//
// Given a tree of [Node] values, each declaring a base size, compress/expand
// flexibilities, hard min/max clamps, and a rendering order, and given a
// target container size, [Solve] computes a concrete size and offset for
// every node such that children of each parent exactly tile that parent
// along the parent's main axis, respecting clamps and flex weights.
//
// # Architecture
//
// Three components, composed leaves-first:
//
//   - distribute.go implements the flat distributor: given a target length
//     and an ordered list of sibling contributions, it computes each
//     sibling's final length via iterative clamp satisfaction.
//   - solve.go drives the distributor recursively over a tree, resolving
//     Auto sizes bottom-up before distributing top-down, and couples main
//     and cross axes for two-dimensional (row/column) layouts.
//   - place.go assigns offsets to solved children in declared rendering
//     order, with optional rounding to integer pixels.
//
// node.go maintains the tree itself: parent/child linkage, cycle
// protection, and the cached aggregate quantities ([Node.AccumulateBase]
// and friends) that back Auto resolution.
//
// # Usage
//
//	root := discadelta.Create(discadelta.Config{Name: "root", Max: math.Inf(1)})
//	a := discadelta.Create(discadelta.Config{Name: "a", Base: discadelta.Flat(100), Min: 50, Max: 300, FlexCompress: 1})
//	b := discadelta.Create(discadelta.Config{Name: "b", Base: discadelta.Flat(200), Min: 150, Max: 400, FlexCompress: 1})
//	discadelta.Link(a, root)
//	discadelta.Link(b, root)
//	discadelta.Solve(root, discadelta.SolveOptions{TargetMain: 200})
//	a.Content().Distance // 50
//	b.Content().Distance // 150
//
// The engine is single-threaded and synchronous: a Solve call is a pure
// transformation of the tree's mutable Content fields and completes before
// returning. There is no text measurement, styling, repaint scheduling,
// animation, or persistence here — those are the job of external
// collaborators (see pkg/diagram, internal/cli, internal/api).
package discadelta
