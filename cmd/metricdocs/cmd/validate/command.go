// Package validate implements the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/internal/appcontext"
	"github.com/agentstation/metricdocs/internal/cmd/output"
)

// NewCommand creates the validate command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Validate every catalog entity without touching the output tree",
		Long: `Validate fetches the catalog, runs the naming checks and samples every
entity's data endpoint. Issues are printed and written to the validation
report; the documentation tree and the comparison snapshot are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.Engine()
			if err != nil {
				return err
			}
			result, err := engine.Validate(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable && len(result.Issues) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No issues found in %d entities\n", result.Checked)
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.IssuesData(result.Issues))
		},
	}
}
