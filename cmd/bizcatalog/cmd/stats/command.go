// Package stats provides the stats command.
package stats

import (
	"github.com/spf13/cobra"

	"github.com/lucheestiy/bizcatalog/internal/cmd/application"
	"github.com/lucheestiy/bizcatalog/internal/cmd/output"
	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
)

// NewCommand creates the stats command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:     "stats [catalog.jsonl]",
		GroupID: "core",
		Short:   "Summarize a catalog",
		Args:    cobra.MaximumNArgs(1),
		Long: `Stats counts the companies of a JSONL catalog by source, the categories
and rubrics it defines, how many records carry contact data, and the
categories with the most companies.

Without an argument the configured existing catalog is read.`,
		Example: `  bizcatalog stats
  bizcatalog stats public/data/ibiz/companies.with-belarusinfo.jsonl
  bizcatalog stats --top 20 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config().ExistingJSONL
			if len(args) == 1 {
				path = args[0]
			}

			snap, err := catalogs.Load(path, catalogs.WithoutSanitize(), catalogs.WithLogger(app.Logger()))
			if err != nil {
				return err
			}
			if snap.Malformed > 0 {
				app.Logger().Warn().Int("lines", snap.Malformed).Str("path", path).Msg("skipped malformed catalog lines")
			}

			st := catalogs.Summarize(snap.Companies)
			format := output.Format(app.OutputFormat())
			limit := top
			if format == output.FormatWide {
				limit = 0
			}
			return output.Write(cmd.OutOrStdout(), format, st, output.StatsToTableData(st, limit))
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "number of categories listed in table output (wide lists all)")

	return cmd
}
