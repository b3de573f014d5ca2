// Package constants provides shared constants used throughout the metricdocs codebase.
// This includes timeouts, batch and page sizes, file permissions and default
// paths that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport level timeout for catalog API requests
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultSampleTimeout is the per-request budget for a single sample-data fetch
	DefaultSampleTimeout = 5 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 30 * time.Minute

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define page and batch sizes
const (
	// DefaultPageSize is the number of entities requested per catalog page
	DefaultPageSize = 100

	// DefaultBatchSize is the number of sample fetches run concurrently per validation batch
	DefaultBatchSize = 100

	// DefaultSampleWindow is how far back the sample start_date reaches
	DefaultSampleWindow = 30 * 24 * time.Hour

	// SamplePreviewRows is the number of sample data points rendered on an entity page
	SamplePreviewRows = 5

	// MaxFragmentLength caps the offending data fragment stored on an issue
	MaxFragmentLength = 200
)

// Path constants
const (
	// DefaultOutputDir is the default root of the generated documentation tree
	DefaultOutputDir = "docs/metrics"

	// DefaultFileExtension is the extension of generated entity pages
	DefaultFileExtension = ".mdx"

	// DefaultComparisonSnapshot is the default location of the flat comparison snapshot
	DefaultComparisonSnapshot = ".metricdocs/catalog.json"

	// DefaultShapesDir is the default directory holding shape snapshots
	DefaultShapesDir = ".metricdocs/shapes"

	// DefaultReportPath is the default location of the validation report
	DefaultReportPath = "validation-report.md"
)

// API constants
const (
	// MetricsEndpoint is the paginated entity listing path
	MetricsEndpoint = "/metrics"

	// DateFormat is the layout of start_date query values and sample dates
	DateFormat = "2006-01-02"
)
