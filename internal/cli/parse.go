package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// parseCommand creates the parse command for converting documents to graph JSON.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "parse [document.yml|-]",
		Short: "Convert a quest document into graph JSON",
		Long: `Convert a quest document into graph JSON.

Every top-level key becomes a node. Options and open branches whose target
names another node become edges. Stored canvas positions are kept; when no
node has one, positions are computed with the layered layout.

Reads from stdin when the argument is "-". Writes to stdout unless -o is given.`,
		Example: `  questcanvas parse quests/guard.yml
  questcanvas parse quests/guard.yml -o guard.json --relayout
  cat guard.yml | questcanvas parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Layout = lf.apply(c.config.Layout)
			return c.runParse(cmd, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Relayout, "relayout", false, "discard stored positions and compute new ones")
	cmd.Flags().BoolVar(&opts.LayoutUnpositioned, "layout-unpositioned", false, "compute positions for nodes without a stored canvas")
	lf.register(cmd.Flags())

	return cmd
}

// runParse reads the document, builds its graph and writes graph JSON.
func (c *CLI) runParse(cmd *cobra.Command, input, output string, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

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

	g, cached, err := parseGraph(ctx, runner, text, opts)
	if err != nil {
		return err
	}
	logger.Debug("parsed", "source", source, "nodes", g.NodeCount(), "edges", g.EdgeCount(), "cached", cached)

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if output != "" && output != "-" {
		printSuccess("Parsed %s", source)
		printFile(output)
		printStats(g.NodeCount(), g.EdgeCount(), 0, cached)
		printNewline()
		printNextStep("Render", appName+" render "+input)
	}
	return nil
}

// parseGraph parses text and, with Relayout, replaces stored positions with
// the cached or computed layout.
func parseGraph(ctx context.Context, runner *pipeline.Runner, text []byte, opts pipeline.Options) (g quest.Graph, cached bool, err error) {
	g, err = runner.Parse(ctx, text, opts)
	if err != nil {
		return g, false, err
	}
	if !opts.Relayout {
		return g, false, nil
	}
	g, _, cached, err = runner.LayoutWithCacheInfo(ctx, g, opts)
	return g, cached, err
}
