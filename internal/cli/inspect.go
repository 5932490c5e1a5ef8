package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// inspectCommand creates the interactive node browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [document.yml]",
		Short: "Browse the nodes of a quest document interactively",
		Long: `Browse the nodes of a quest document interactively.

The list shows every node with its content and lint findings. Press enter to
open a node, a digit to follow one of its edges, and esc to go back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, source, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			g, err := runner.Parse(ctx, text, pipeline.Options{Source: source})
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				printInfo("%s has no nodes", source)
				return nil
			}

			p := tea.NewProgram(NewNodeBrowserModel(g), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
