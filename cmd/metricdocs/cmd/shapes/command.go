// Package shapes implements the shapes command.
package shapes

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/internal/appcontext"
	"github.com/agentstation/metricdocs/internal/cmd/output"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/sync"
)

// NewCommand creates the shapes command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shapes",
		GroupID: "management",
		Short:   "Track response shape drift of API endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCheckCommand(app))
	return cmd
}

func newCheckCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "check <endpoint> [key=value...]",
		Short: "Compare an endpoint's response shape with its stored baseline",
		Long: `Check fetches the endpoint with the given query parameters, extracts the
shape of the response and compares it with the baseline stored for the
same endpoint and parameters. The first check records the baseline; a
drift replaces it. Exit status is 2 when the shape drifted.`,
		Example: `  metricdocs shapes check /metrics page_size=100
  metricdocs shapes check /metrics/fees/data project=bitcoin start_date=2025-01-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := ParseParams(args[1:])
			if err != nil {
				return err
			}
			engine, err := app.Engine()
			if err != nil {
				return err
			}

			result, err := engine.CheckShape(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable && !result.HasDrift() {
				msg := "Shape unchanged"
				if result.IsNew {
					msg = "Baseline recorded"
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s for %s\n", msg, args[0])
				return err
			}
			if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), output.ChangesData(result.Changes)); err != nil {
				return err
			}
			if result.HasDrift() {
				return appcontext.Exit(sync.ExitChanged)
			}
			return nil
		},
	}
}

// ParseParams turns key=value arguments into query parameters.
func ParseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.NewValidationError("params", arg, "parameters must be key=value")
		}
		params[key] = value
	}
	return params, nil
}
