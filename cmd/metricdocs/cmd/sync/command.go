// Package sync implements the sync command.
package sync

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/metricdocs/internal/appcontext"
	"github.com/agentstation/metricdocs/internal/cmd/output"
	mdsync "github.com/agentstation/metricdocs/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	UpdateOnly     bool
	DryRun         bool
	SkipValidation bool
	SkipPages      bool
	Timeout        time.Duration
}

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile the documentation tree with the remote catalog",
		Long: `Sync fetches the full catalog and brings the documentation tree in line with it:

• Fetch every catalog page and compare it with the last run's snapshot
• Scan the output tree for existing entity pages
• Remove pages of entities that left the catalog and prune empty directories
• Sample every entity and validate its data shape
• Render one page per entity and write the validation report

Exit status is 0 when nothing was added or removed, 2 when entities were
added or removed, and 1 on failure.`,
		Example: `  metricdocs sync                   # Full run
  metricdocs sync --update-only     # Stop early when the catalog is unchanged
  metricdocs sync --dry-run         # Report changes without touching the tree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("update-only") {
				flags.UpdateOnly = app.UpdateOnly()
			}
			return Execute(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.UpdateOnly, "update-only", false, "skip the run when the catalog is unchanged since the last snapshot")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "reconcile and validate without writing anything")
	cmd.Flags().BoolVar(&flags.SkipValidation, "skip-validation", false, "do not sample entities or write the report")
	cmd.Flags().BoolVar(&flags.SkipPages, "skip-pages", false, "do not render entity pages")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "timeout for the whole run (0 means none)")

	return cmd
}

// Execute runs the sync and prints its summary.
func Execute(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	engine, err := app.Engine()
	if err != nil {
		return err
	}

	result, err := engine.Sync(cmd.Context(),
		mdsync.WithUpdateOnly(flags.UpdateOnly),
		mdsync.WithDryRun(flags.DryRun),
		mdsync.WithSkipValidation(flags.SkipValidation),
		mdsync.WithSkipPages(flags.SkipPages),
		mdsync.WithTimeout(flags.Timeout),
	)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	if err := formatter.Format(cmd.OutOrStdout(), Summary(result)); err != nil {
		return err
	}
	return appcontext.Exit(result.ExitCode())
}

// Summary builds the result table of a sync run.
func Summary(r *mdsync.Result) output.Data {
	if r.Skipped {
		return output.SummaryData([][2]string{
			{"Fetch", fmt.Sprintf("%d entities, unchanged", r.Entities)},
		}, r)
	}

	report := "none"
	if r.ReportWritten {
		report = r.ReportPath
	}
	fetch := fmt.Sprintf("%d entities in %d collections (%d pages)", r.Entities, r.Collections, r.FetchedPages)
	if r.Partial {
		fetch += ", partial"
	}

	pairs := [][2]string{
		{"Fetch", fetch},
		{"Added", strconv.Itoa(len(r.Added))},
		{"Removed", strconv.Itoa(len(r.Removed))},
		{"Files deleted", strconv.Itoa(len(r.RemovedFiles))},
		{"Directories pruned", strconv.Itoa(len(r.RemovedDirs))},
		{"Checked", fmt.Sprintf("%d (%d failed fetches)", r.Checked, r.FailedFetches)},
		{"Issues", strconv.Itoa(len(r.Issues))},
		{"Pages written", strconv.Itoa(r.PagesWritten)},
		{"Report", report},
	}
	if r.ShapeDrift != nil {
		pairs = append(pairs, [2]string{"Listing shape", r.ShapeDrift.String()})
	}
	if r.DryRun {
		pairs = append(pairs, [2]string{"Mode", "dry run"})
	}
	return output.SummaryData(pairs, r)
}
