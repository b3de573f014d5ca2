package app

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/internal/appcontext"
	"github.com/agentstation/metricdocs/pkg/logging"
)

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	config    string
	verbose   bool
	quiet     bool
	noColor   bool
	format    string
	logLevel  string
	outputDir string
	apiURL    string
}

// Execute runs the metricdocs CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "metricdocs",
		Short:   "Metrics catalog documentation sync",
		Version: a.version,
		Long: `Metricdocs keeps a generated documentation tree in sync with a remote
metrics catalog. It removes pages of entities that left the catalog,
validates every entity's sample data and renders fresh pages together
with a validation report.

The API is configured with METRICDOCS_API_URL and METRICDOCS_API_KEY,
either in the environment, a .env file or .metricdocs.yaml.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default is ./.metricdocs.yaml or $HOME/.metricdocs.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.outputDir, "output-dir", "", "documentation tree root (default "+a.config.OutputDir+")")
	pf.StringVar(&flags.apiURL, "api-url", "", "catalog API base URL")

	rootCmd.SetVersionTemplate("metricdocs {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given, applies flags on top and installs the logger.
func (a *App) setupCommand(cmd *cobra.Command, flags *globalFlags) error {
	if flags.config != "" {
		config, err := LoadConfigFile(flags.config)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel)
	if flags.outputDir != "" {
		a.config.OutputDir = flags.outputDir
	}
	if flags.apiURL != "" {
		a.config.APIURL = flags.apiURL
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError exits the process for a non-nil error. An ExitError exits
// silently with its code; anything else is printed and exits with 1.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	var exit *appcontext.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
	os.Exit(1)
}
