package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/index"
)

// checkCommand creates the check command for cross-document identifier checks.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		exclude string
		id      string
	)

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report node identifiers defined in more than one document",
		Long: `Report node identifiers defined in more than one document.

Every .yml and .yaml file below dir (default: the working directory) is
indexed by its top-level keys. Documents that fail to parse still take part.

With --id only the documents defining that identifier are listed. --exclude
leaves one document out, typically the one being edited.`,
		Example: `  questcanvas check quests
  questcanvas check quests --id guard_intro --exclude town/guard.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runCheck(cmd, dir, exclude, id)
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "document path (relative to dir) to leave out")
	cmd.Flags().StringVar(&id, "id", "", "list the documents defining this identifier")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, dir, exclude, id string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	docs, err := index.Scan(ctx, os.DirFS(dir), ".")
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d documents", len(docs)))

	out := cmd.OutOrStdout()

	if id != "" {
		defs := index.Build(docs, exclude).CheckDuplicate(id)
		if len(defs) == 0 {
			return errors.New(errors.ErrCodeNotFound, "%s is not defined in %s", id, dir)
		}
		fmt.Fprintln(out, strings.Join(defs, "\n"))
		return nil
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	dups, err := runner.Duplicates(ctx, docs, exclude)
	if err != nil {
		return err
	}
	if len(dups) == 0 {
		printSuccess("No duplicate identifiers in %d documents", len(docs))
		return nil
	}

	fmt.Fprintln(out, duplicatesTable(dups))
	return errors.New(errors.ErrCodeInvalidDocument, "%d identifiers defined in more than one document", len(dups))
}
