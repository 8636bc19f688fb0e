// Package validate provides the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucheestiy/bizcatalog/internal/cmd/application"
	"github.com/lucheestiy/bizcatalog/internal/cmd/emoji"
	"github.com/lucheestiy/bizcatalog/internal/cmd/output"
	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [catalog.jsonl]",
		GroupID: "management",
		Short:   "Check a catalog against the publishing rules",
		Args:    cobra.MaximumNArgs(1),
		Long: `Validate checks that a JSONL catalog can be published:
  - no website, source URL or text links to belarusinfo.by
  - each record's categories are exactly the categories of its rubrics
  - no two different rubrics share a slug
  - every record has at least one rubric

Records are checked exactly as stored. The command fails when any rule is broken.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config().ExistingJSONL
			if len(args) == 1 {
				path = args[0]
			}

			snap, err := catalogs.Load(path, catalogs.WithoutSanitize(), catalogs.WithLogger(app.Logger()))
			if err != nil {
				return err
			}

			violations := catalogs.Validate(snap.Companies)
			format := output.Format(app.OutputFormat())
			w := cmd.OutOrStdout()

			if len(violations) == 0 {
				if format.IsTable() {
					_, _ = fmt.Fprintf(w, "%s %s: %d companies, no violations\n", emoji.Success, path, len(snap.Companies))
					return nil
				}
				return output.Write(w, format, []catalogs.Violation{}, output.Data{})
			}

			if err := output.Write(w, format, violations, output.ViolationsToTableData(violations, format == output.FormatWide)); err != nil {
				return err
			}
			if format.IsTable() {
				_, _ = fmt.Fprintf(w, "%s %d violations in %s\n", emoji.Error, len(violations), path)
			}
			return errors.ErrValidationFailed
		},
	}

	return cmd
}
