// Package pkg provides the core libraries behind the discadelta layout
// engine.
//
// # Overview
//
// A discadelta tree is a set of [discadelta.Node] values linked into a
// hierarchy; each node declares a base size, min/max clamps, and flex
// factors along its parent's main axis (and, for two-dimensional trees,
// its parent's cross axis). [discadelta.Solve] walks the tree once,
// resolving Auto sizes, distributing a target length across each level's
// children, and placing them in order.
//
// The pkg directory is organized by concern:
//
//  1. [discadelta] - the solver itself: node model, distributor, placer
//  2. [config] - TOML configuration and XDG path resolution
//  3. [cache] - memoized solve results (file, Redis, or null-backed)
//  4. [store] - durable tree definitions and their last-solved result
//  5. [diagram] - Graphviz export of a solved tree, for debugging
//  6. [observability] - hook interfaces for solver/cache/HTTP instrumentation
//  7. [errors] - structured, code-tagged errors shared across layers
//  8. [buildinfo] - version metadata injected at build time
//
// # Quick Start
//
// Build a two-child row, solve it against a target width, and read back
// each child's resolved distance:
//
//	root := discadelta.Create(discadelta.Config{Name: "root", Max: math.Inf(1)})
//	a := discadelta.Create(discadelta.Config{
//	    Name: "a", Base: discadelta.Flat(100), Max: math.Inf(1),
//	    FlexCompress: 1, FlexExpand: 1,
//	})
//	b := discadelta.Create(discadelta.Config{
//	    Name: "b", Base: discadelta.Flat(200), Max: math.Inf(1),
//	    FlexCompress: 1, FlexExpand: 1,
//	})
//	discadelta.Link(a, root)
//	discadelta.Link(b, root)
//
//	discadelta.Solve(root, discadelta.SolveOptions{TargetMain: 450, HasTargetCross: true})
//	fmt.Println(a.Content().Distance, b.Content().Distance) // 175 275
//
// # Persistence and caching
//
// [store.TreeDefinition] captures a tree's declaration (not its solved
// output) so it can be reloaded and re-solved later; [store.Store]
// persists named [store.Document] records. [cache.Cache] memoizes a
// solve's result keyed by a hash of the tree plus the [discadelta.SolveOptions]
// it was solved under, via [cache.Keyer].
//
// # Command-line and HTTP surfaces
//
// internal/cli wraps these packages in a cobra-based CLI (solve,
// visualize, inspect, serve, completion); internal/api exposes the same
// solve operation over HTTP for long-running or shared deployments.
package pkg
