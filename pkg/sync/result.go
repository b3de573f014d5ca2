package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/differ"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// Process exit codes for a finished run.
const (
	ExitNoChange = 0 // nothing was added or removed
	ExitFailure  = 1 // the run could not complete
	ExitChanged  = 2 // entities were added or removed and processed
)

// Result represents the complete result of a sync run.
type Result struct {
	// Fetch statistics
	Entities     int  // Entities in the fetched catalog
	Collections  int  // Collections in the fetched catalog
	FetchedPages int  // Listing pages read
	Partial      bool // Pagination stopped early on a page error
	Skipped      bool // Incremental run found the catalog unchanged

	// Shape drift of the listing endpoint, nil when unchecked or unchanged
	ShapeDrift *differ.Changeset

	// Reconciliation
	Added     []catalog.Key
	Removed   []catalog.Key
	Unchanged int

	// Output tree lifecycle
	RemovedFiles []string
	RemovedDirs  []string
	FileErrors   int

	// Validation
	Issues        []validator.Issue
	Checked       int
	FailedFetches int
	Batches       int

	// Rendering and reporting
	PagesWritten  int
	PageErrors    int
	ReportWritten bool
	ReportPath    string

	// Operation metadata
	DryRun    bool
	OutputDir string
}

// HasChanges returns true if any entity was added or removed.
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// ExitCode maps the result to the process exit code convention. Only a
// run that processed added or removed entities reports ExitChanged; a dry
// run processes nothing.
func (r *Result) ExitCode() int {
	if r == nil {
		return ExitFailure
	}
	if !r.Skipped && !r.DryRun && r.HasChanges() {
		return ExitChanged
	}
	return ExitNoChange
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	if r.Skipped {
		return fmt.Sprintf("Catalog unchanged (%d entities), nothing to do", r.Entities)
	}

	summary := fmt.Sprintf("%d entities: %d added, %d removed, %d unchanged; %d issues",
		r.Entities, len(r.Added), len(r.Removed), r.Unchanged, len(r.Issues))

	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if r.Partial {
		parts = append(parts, "(Partial catalog)")
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}
