package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// lintCommand creates the lint command.
func (c *CLI) lintCommand() *cobra.Command {
	var (
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lint [document.yml|-]",
		Short: "Report advisory findings for a quest document",
		Long: `Report advisory findings for a quest document.

Rules:
  dangling-target  an option or open branch names a node that does not exist
  empty-option     an option has no text
  unreachable      no path leads to the node from an entry node
  cycle            an edge leads back to an earlier node (info)

Findings never change the document. With --strict the command fails when any
warning is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLint(cmd, args[0], strict, asJSON)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when warnings are found")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write findings as JSON")

	return cmd
}

func (c *CLI) runLint(cmd *cobra.Command, input string, strict, asJSON bool) error {
	ctx := cmd.Context()

	text, source, err := readInput(cmd.InOrStdin(), input)
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
	findings := quest.Lint(g)

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		if findings == nil {
			findings = []quest.Finding{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return err
		}
	case len(findings) == 0:
		printSuccess("%s: no findings", source)
	default:
		fmt.Fprintln(out, findingsTable(findings))
	}

	warnings := 0
	for _, f := range findings {
		if f.Severity == quest.SeverityWarning {
			warnings++
		}
	}
	if strict && warnings > 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "%s: %d warnings", source, warnings)
	}
	return nil
}
