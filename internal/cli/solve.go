package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Putcho1994/Discadelta/pkg/cache"
	"github.com/Putcho1994/Discadelta/pkg/discadelta"
	"github.com/Putcho1994/Discadelta/pkg/observability"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// solveCommand creates the solve command for resolving a node-tree
// definition against a target size.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output         string
		noCache        bool
		targetMain     float64
		targetCross    float64
		round          bool
		originMain     float64
		originCross    float64
	)

	cmd := &cobra.Command{
		Use:   "solve [tree.json]",
		Short: "Solve a node-tree definition against a target size",
		Long: `Solve a node-tree definition against a target size.

The solve command takes a tree.json file declaring a tree of nodes (base
size, min/max clamps, flex factors, and for two-dimensional trees a
direction and cross-axis clamps) and resolves every node's distance,
offset, and — for two-dimensional trees — width/height/x/y.

Results are cached locally for faster subsequent runs of the same tree
under the same target.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasCross := cmd.Flags().Changed("target-cross")
			return c.runSolve(cmd.Context(), args[0], output, noCache, cache.SolveKeyOpts{
				TargetMain:     targetMain,
				TargetCross:    targetCross,
				HasTargetCross: hasCross,
				OriginMain:     originMain,
				OriginCross:    originCross,
				Round:          round,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.snapshot.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&targetMain, "target-main", 0, "target size along the root's main axis")
	cmd.Flags().Float64Var(&targetCross, "target-cross", 0, "target size along the root's cross axis (2D trees); omit to resolve naturally")
	cmd.Flags().BoolVar(&round, "round", true, "round resolved distances to whole units, preserving parent totals")
	cmd.Flags().Float64Var(&originMain, "origin-main", 0, "main-axis offset of the root")
	cmd.Flags().Float64Var(&originCross, "origin-cross", 0, "cross-axis offset of the root")

	return cmd
}

// runSolve loads the tree, solves it, and writes the resulting snapshot.
func (c *CLI) runSolve(ctx context.Context, input, output string, noCache bool, keyOpts cache.SolveKeyOpts) error {
	def, err := store.ReadTreeDefinitionFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	backend, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	treeData, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	keyer := cache.NewDefaultKeyer()
	key := keyer.SolveKey(cache.Hash(treeData), keyOpts)

	cached := false
	var out []byte
	if cachedData, hit, err := backend.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "solve")
		out, cached = cachedData, true
	} else {
		observability.Cache().OnCacheMiss(ctx, "solve")

		root := def.Build()
		opts := discadelta.SolveOptions{
			TargetMain:     keyOpts.TargetMain,
			TargetCross:    keyOpts.TargetCross,
			HasTargetCross: keyOpts.HasTargetCross,
			OriginMain:     keyOpts.OriginMain,
			OriginCross:    keyOpts.OriginCross,
			Round:          keyOpts.Round,
		}

		ctx = withLogger(ctx, c.Logger)
		p := newProgress(loggerFromContext(ctx))
		spinner := newSpinnerWithContext(ctx, "Solving layout...")
		spinner.Start()
		observability.Solver().OnSolveStart(ctx, root.Name(), countNodes(root))
		discadelta.Solve(root, opts)
		observability.Solver().OnSolveComplete(ctx, root.Name(), 0, nil)
		spinner.Stop()
		p.done("solved " + root.Name())

		if ctx.Err() != nil {
			return ctx.Err()
		}

		snapshot := root.Snapshot()
		out, err = discadelta.MarshalSnapshot(snapshot)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}

		if err := backend.Set(ctx, key, out, 0); err == nil {
			observability.Cache().OnCacheSet(ctx, "solve", len(out))
		}
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".snapshot.json"
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Solve complete")
	printFile(outputPath)
	printStats(countDefNodes(def), cached)
	printNewline()
	printNextStep("Inspect", "discadelta inspect "+input)

	return nil
}

func countNodes(n *discadelta.Node) int {
	count := 1
	for _, child := range n.Children() {
		count += countNodes(child)
	}
	return count
}

func countDefNodes(d store.TreeDefinition) int {
	count := 1
	for _, child := range d.Children {
		count += countDefNodes(child)
	}
	return count
}
