package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// generateCommand creates the generate command for writing graphs back as documents.
func (c *CLI) generateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate [graph.json|-]",
		Short: "Write graph JSON back as a quest document",
		Long: `Write graph JSON back as a quest document.

Nodes are written in graph order under their labels. Targets follow the edges
of the graph, so renamed nodes are written under their new names everywhere.
Canvas positions are stored under the reserved metadata key.`,
		Example: `  questcanvas generate guard.json -o quests/guard.yml
  questcanvas parse guard.yml | questcanvas generate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input, output string) error {
	ctx := cmd.Context()

	var (
		g   quest.Graph
		err error
	)
	if input == "-" {
		g, err = graph.ReadGraph(cmd.InOrStdin())
	} else {
		g, err = graph.ReadGraphFile(input)
	}
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	text := runner.Generate(ctx, g)
	if err := writeOutput(cmd.OutOrStdout(), output, text); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if output != "" && output != "-" {
		printSuccess("Generated %s", output)
		printDetail("%d nodes", g.NodeCount())
	}
	return nil
}
