package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// renderCommand creates the render command for drawing documents as node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		lf      layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [document.yml|-]",
		Short: "Draw a quest document as a node-link diagram",
		Long: `Draw a quest document as a node-link diagram.

Formats: dot, svg, png, pdf, json (graph JSON) and yaml (canonical document).
Several formats may be given as a comma-separated list; each is written next
to the output base path with its extension. A single format is written to
stdout with -o -.`,
		Example: `  questcanvas render quests/guard.yml
  questcanvas render quests/guard.yml -f svg,png -o out/guard
  questcanvas render quests/guard.yml -f dot -o - | dot -Tpng > guard.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			opts.Layout = lf.apply(c.config.Layout)
			return c.runRender(cmd, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats, comma-separated (default: svg)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show line and option counts in node labels")
	cmd.Flags().BoolVar(&opts.Relayout, "relayout", false, "draw computed positions instead of stored ones")
	lf.register(cmd.Flags())

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, input, output string, opts pipeline.Options) error {
	ctx := cmd.Context()

	if output == "-" && len(opts.Formats) != 1 {
		return fmt.Errorf("writing to stdout requires exactly one format, got %s", strings.Join(opts.Formats, ","))
	}
	if input == "-" && output == "" {
		return fmt.Errorf("--output is required when reading from stdin")
	}

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

	toStdout := output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, "Rendering "+source+"...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, text, opts)
	switch {
	case spinner == nil:
	case err != nil:
		spinner.StopWithError("Render failed")
	default:
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if toStdout {
		return writeOutput(cmd.OutOrStdout(), output, result.Artifacts[opts.Formats[0]])
	}

	base := output
	if base == "" {
		base = derivedPath(input, "")
	}
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := writeOutput(cmd.OutOrStdout(), path, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", source)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.Crossings, result.CacheInfo.LayoutHit)
	if n := len(result.Findings); n > 0 {
		printNewline()
		printNextStep(fmt.Sprintf("%d lint findings", n), appName+" lint "+input)
	}
	return nil
}
