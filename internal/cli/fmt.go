package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// fmtCommand creates the fmt command for rewriting documents in canonical form.
func (c *CLI) fmtCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [document.yml...]",
		Short: "Rewrite quest documents in canonical form",
		Long: `Rewrite quest documents in canonical form.

Each document is parsed and generated again: legacy field names are replaced
by their canonical spelling, targets are resolved to current labels, and
unknown fields are kept. Documents are rewritten in place, or written to
stdout when the argument is "-".

With --check nothing is written and the command fails if any document is not
already canonical.`,
		Example: `  questcanvas fmt quests/*.yml
  questcanvas fmt --check quests/*.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(cmd, args, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report documents that are not canonical without rewriting them")

	return cmd
}

func (c *CLI) runFmt(cmd *cobra.Command, inputs []string, check bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var unformatted []string
	for _, input := range inputs {
		text, source, err := readInput(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		g, err := runner.Parse(ctx, text, pipeline.Options{Source: source})
		if err != nil {
			return err
		}
		out := runner.Generate(ctx, g)

		if input == "-" {
			if check {
				if !bytes.Equal(text, out) {
					unformatted = append(unformatted, source)
				}
				continue
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			continue
		}

		if bytes.Equal(text, out) {
			logger.Debug("already canonical", "file", input)
			continue
		}
		if check {
			unformatted = append(unformatted, input)
			continue
		}
		if err := os.WriteFile(input, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", input, err)
		}
		printFile(input)
	}

	if len(unformatted) > 0 {
		for _, name := range unformatted {
			printWarning("%s is not canonical", name)
		}
		return errors.New(errors.ErrCodeInvalidDocument, "%d of %d documents need formatting", len(unformatted), len(inputs))
	}
	return nil
}
