package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// layoutCommand creates the layout command for recomputing canvas positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		inPlace bool
		lf      layoutFlags
	)
	opts := pipeline.Options{Relayout: true}

	cmd := &cobra.Command{
		Use:   "layout [document.yml]",
		Short: "Recompute canvas positions for a quest document",
		Long: `Recompute canvas positions for a quest document.

Nodes are ranked into columns by the longest path from their roots, ordered
within each column to reduce edge crossings, and stacked without overlap.

The document is written with its new positions to -o, back to the input with
--write, or to stdout. With --json the layout itself (positions, ranks, rows
and crossing count) is written instead.

Layouts are cached by graph structure and layout constants.`,
		Example: `  questcanvas layout quests/guard.yml --write
  questcanvas layout quests/guard.yml --json --rank-gap 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPlace && output != "" {
				return fmt.Errorf("--write and --output are mutually exclusive")
			}
			if inPlace {
				output = args[0]
			}
			opts.Layout = lf.apply(c.config.Layout)
			return c.runLayout(cmd, args[0], output, asJSON, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input document")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the layout result as JSON")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached layouts")
	lf.register(cmd.Flags())

	return cmd
}

// runLayout parses the document, lays it out, and writes the result.
func (c *CLI) runLayout(cmd *cobra.Command, input, output string, asJSON bool, opts pipeline.Options) error {
	ctx := cmd.Context()

	text, source, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	opts.Source = source

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.Parse(ctx, text, opts)
	if err != nil {
		return err
	}

	toFile := output != "" && output != "-"
	var spinner *Spinner
	if toFile {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d nodes...", g.NodeCount()))
		spinner.Start()
	}
	positioned, l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var data []byte
	if asJSON {
		if data, err = graph.MarshalLayout(l); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
	} else {
		data = runner.Generate(ctx, positioned)
	}
	if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if toFile {
		printSuccess("Layout complete")
		printFile(output)
		printStats(positioned.NodeCount(), positioned.EdgeCount(), l.Crossings, cacheHit)
	}
	return nil
}
