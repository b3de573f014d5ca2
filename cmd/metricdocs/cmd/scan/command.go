// Package scan implements the scan command.
package scan

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/internal/appcontext"
	"github.com/agentstation/metricdocs/internal/cmd/output"
	"github.com/agentstation/metricdocs/pkg/scanner"
)

// NewCommand creates the scan command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "scan [dir]",
		GroupID: "management",
		Short:   "List the entities that have a page in the output tree",
		Long: `Scan walks the documentation tree and prints the collection/identifier
key of every entity page it finds. It needs no API access.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.OutputDir()
			if len(args) == 1 {
				root = args[0]
			}

			s := scanner.New(scanner.WithExtension(app.FileExtension()))
			keys := s.Scan(cmd.Context(), root).Sorted()

			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			return formatter.Format(cmd.OutOrStdout(), output.KeysData(keys))
		},
	}
}
