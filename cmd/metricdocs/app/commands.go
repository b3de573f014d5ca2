package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/cmd/metricdocs/cmd/scan"
	"github.com/agentstation/metricdocs/cmd/metricdocs/cmd/shapes"
	"github.com/agentstation/metricdocs/cmd/metricdocs/cmd/sync"
	"github.com/agentstation/metricdocs/cmd/metricdocs/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(scan.NewCommand(a))
	rootCmd.AddCommand(shapes.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("metricdocs %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
