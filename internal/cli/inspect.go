package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Putcho1994/Discadelta/pkg/discadelta"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// inspectCommand creates the inspect command for browsing a solved tree
// interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		targetMain  float64
		targetCross float64
	)

	cmd := &cobra.Command{
		Use:   "inspect [tree.json]",
		Short: "Browse a solved node tree interactively",
		Long: `Browse a solved node tree interactively.

The inspect command loads a tree.json definition, solves it against the
given target, and opens a terminal browser over the result: navigate with
the arrow keys, press q or enter to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasCross := cmd.Flags().Changed("target-cross")
			return c.runInspect(args[0], targetMain, targetCross, hasCross)
		},
	}

	cmd.Flags().Float64Var(&targetMain, "target-main", 0, "target size along the root's main axis")
	cmd.Flags().Float64Var(&targetCross, "target-cross", 0, "target size along the root's cross axis (2D trees)")

	return cmd
}

func (c *CLI) runInspect(input string, targetMain, targetCross float64, hasCross bool) error {
	def, err := store.ReadTreeDefinitionFile(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}
	root := def.Build()

	discadelta.Solve(root, discadelta.SolveOptions{
		TargetMain:     targetMain,
		TargetCross:    targetCross,
		HasTargetCross: hasCross,
	})

	model := NewNodeTreeModel(root)
	program := tea.NewProgram(model)
	_, err = program.Run()
	return err
}
