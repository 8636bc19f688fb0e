// Package importcmd provides the import command.
package importcmd

import (
	"github.com/spf13/cobra"

	"github.com/lucheestiy/bizcatalog/internal/cmd/application"
	"github.com/lucheestiy/bizcatalog/internal/cmd/output"
	"github.com/lucheestiy/bizcatalog/internal/config"
	"github.com/lucheestiy/bizcatalog/internal/sources/belarusinfo"
	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/importer"
	"github.com/lucheestiy/bizcatalog/pkg/logging"
)

// NewCommand creates the import command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		GroupID: "core",
		Short:   "Import Belarusinfo companies into the catalog",
		Args:    cobra.NoArgs,
		Long: `Import reads the fully scraped companies of a Belarusinfo SQLite database
and merges them into the existing JSONL catalog.

The command will:
• Load the existing catalog, dropping records of a previous Belarusinfo import
• Map every source rubric onto the site taxonomy, creating rubrics as needed
• Skip companies already listed under the same phone, e-mail, domain or name and address
• Write existing records followed by the imported ones, atomically

No field of the written catalog links to belarusinfo.by.`,
		Example: `  bizcatalog import                                   # Write companies.with-belarusinfo.jsonl
  bizcatalog import --dry-run -o json                 # Report only
  bizcatalog import --max-companies 100               # Import at most 100 companies
  bizcatalog import --in-place --backup               # Overwrite the catalog, keeping a backup`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	flags := cmd.Flags()
	flags.String("source-db", constants.DefaultSourceDBPath, "Belarusinfo SQLite database")
	flags.String("existing-jsonl", constants.DefaultExistingCatalogPath, "catalog to merge into")
	flags.String("output-jsonl", constants.DefaultOutputCatalogPath, "merged catalog (ignored with --in-place)")
	flags.Int("max-companies", 0, "import at most this many companies (0 = no limit)")
	flags.Bool("in-place", false, "overwrite --existing-jsonl instead of writing --output-jsonl")
	flags.Bool("backup", false, "copy the catalog aside before an in-place overwrite")
	flags.Bool("dry-run", false, "report what would be imported without writing")

	return cmd
}

func run(cmd *cobra.Command, app application.Application) error {
	cfg := app.Config()
	logger := app.Logger()
	ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), logger), "import")

	src, err := belarusinfo.Open(cfg.SourceDB, belarusinfo.WithLogger(*logger))
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	report, err := importer.Run(ctx, src, Options(cfg)...)
	if err != nil {
		return err
	}

	format := output.Format(app.OutputFormat())
	return output.Write(cmd.OutOrStdout(), format, report, output.ReportToTableData(report, format == output.FormatWide))
}

// Options translates the configuration into import options.
func Options(cfg *config.Config) []importer.Option {
	return []importer.Option{
		importer.WithExistingCatalog(cfg.ExistingJSONL),
		importer.WithOutput(cfg.OutputJSONL),
		importer.WithMaxCompanies(cfg.MaxCompanies),
		importer.WithInPlace(cfg.InPlace),
		importer.WithBackup(cfg.Backup),
		importer.WithDryRun(cfg.DryRun),
	}
}
