package app

import (
	"github.com/spf13/cobra"

	"github.com/lucheestiy/bizcatalog/cmd/bizcatalog/cmd/importcmd"
	"github.com/lucheestiy/bizcatalog/cmd/bizcatalog/cmd/stats"
	"github.com/lucheestiy/bizcatalog/cmd/bizcatalog/cmd/validate"
	"github.com/lucheestiy/bizcatalog/cmd/bizcatalog/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(importcmd.NewCommand(a))
	rootCmd.AddCommand(stats.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
