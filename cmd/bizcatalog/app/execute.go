package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucheestiy/bizcatalog/internal/config"
)

// boundFlags are copied into the configuration when present on the running
// command. Flag names map to keys by replacing dashes with underscores.
var boundFlags = []string{
	"config", "verbose", "quiet", "no-color", "format", "log-level",
	"source-db", "existing-jsonl", "output-jsonl", "max-companies",
	"in-place", "backup", "dry-run",
}

// Execute runs the bizcatalog CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bizcatalog",
		Short:   "Business directory catalog tools",
		Version: a.version,
		Long: `bizcatalog maintains the JSONL company catalog served by the directory site.

It imports scraped Belarusinfo companies from SQLite into the catalog,
mapping their rubrics onto the site taxonomy and dropping duplicates of
companies already listed, and inspects or validates existing catalogs.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./.bizcatalog.yaml or $HOME/.bizcatalog.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("bizcatalog {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It layers the parsed
// flags over the environment and config file and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	for _, name := range boundFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := a.viper.BindPFlag(flagKey(name), flag); err != nil {
			panic("programming error: failed to bind flag " + name + ": " + err.Error())
		}
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.config = cfg

	logger := NewLogger(cfg)
	a.logger = &logger

	return nil
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// ExitOnError is a helper that prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
