package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Putcho1994/Discadelta/pkg/diagram"
	"github.com/Putcho1994/Discadelta/pkg/discadelta"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// visualizeCommand creates the visualize command for exporting a solved
// tree to a Graphviz diagram.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output      string
		format      string
		detailed    bool
		targetMain  float64
		targetCross float64
	)

	cmd := &cobra.Command{
		Use:   "visualize [tree.json]",
		Short: "Render a node-tree definition to a Graphviz diagram",
		Long: `Render a node-tree definition to a Graphviz diagram.

The visualize command loads a tree.json file, solves it against the given
target, and renders the result as DOT or SVG. Use --detailed to include
each node's resolved distance, offset, and size in its label.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasCross := cmd.Flags().Changed("target-cross")
			return c.runVisualize(cmd.Context(), args[0], output, format, detailed, targetMain, targetCross, hasCross)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include resolved distance/offset/size in node labels")
	cmd.Flags().Float64Var(&targetMain, "target-main", 0, "target size along the root's main axis")
	cmd.Flags().Float64Var(&targetCross, "target-cross", 0, "target size along the root's cross axis (2D trees)")

	return cmd
}

// runVisualize loads the tree, solves it, and renders it to DOT or SVG.
func (c *CLI) runVisualize(ctx context.Context, input, output, format string, detailed bool, targetMain, targetCross float64, hasCross bool) error {
	if format != "dot" && format != "svg" {
		return fmt.Errorf("unsupported format %q: want dot or svg", format)
	}

	def, err := store.ReadTreeDefinitionFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}
	root := def.Build()

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	discadelta.Solve(root, discadelta.SolveOptions{
		TargetMain:     targetMain,
		TargetCross:    targetCross,
		HasTargetCross: hasCross,
	})

	dot := diagram.ToDOT(root, diagram.Options{Detailed: detailed})

	var data []byte
	if format == "dot" {
		data = []byte(dot)
	} else {
		data, err = diagram.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Diagram rendered")
	printFile(outputPath)
	printNewline()
	printNextStep("Inspect", "discadelta inspect "+input)

	return nil
}
