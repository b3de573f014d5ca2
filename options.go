package metricdocs

import (
	"net/http"
	"time"

	"github.com/agentstation/metricdocs/internal/api"
	"github.com/agentstation/metricdocs/internal/transport"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// Option is a function that configures an Engine
type Option func(*config) error

// config holds the configuration for an Engine
type config struct {
	// Catalog source
	source Source

	// Paths
	outputDir          string
	fileExtension      string
	comparisonSnapshot string
	shapesDir          string
	reportPath         string

	// Sizes and budgets
	pageSize      int
	batchSize     int
	sampleTimeout time.Duration

	// Static checks
	namingRules []validator.NamingRule

	// Page rendering; a nil renderer with rendererSet disables pages
	renderer    Renderer
	rendererSet bool
}

// defaultConfig returns a fresh configuration with default values.
func defaultConfig() *config {
	return &config{
		outputDir:          constants.DefaultOutputDir,
		fileExtension:      constants.DefaultFileExtension,
		comparisonSnapshot: constants.DefaultComparisonSnapshot,
		shapesDir:          constants.DefaultShapesDir,
		reportPath:         constants.DefaultReportPath,
		pageSize:           constants.DefaultPageSize,
		batchSize:          constants.DefaultBatchSize,
		sampleTimeout:      constants.DefaultSampleTimeout,
		namingRules:        validator.DefaultNamingRules,
	}
}

// APIConfig describes how to reach the remote catalog API.
type APIConfig struct {
	URL    string
	Key    string
	Scheme string // "bearer" (default), "header", "query" or "none"
	Header string // header or query parameter name for the header and query schemes

	SampleWindow time.Duration // how far back sample fetches reach
	HTTPClient   *http.Client
}

// WithAPI configures the engine to read from the catalog API. A missing
// URL or key is a configuration error.
func WithAPI(cfg APIConfig) Option {
	return func(c *config) error {
		if cfg.URL == "" {
			return errors.NewConfigError("api", "api_url is required", nil)
		}
		if cfg.Key == "" && cfg.Scheme != "none" {
			return errors.NewConfigError("api", "api_key is required", nil)
		}

		topts := []transport.Option{
			transport.WithAuth(transport.AuthenticatorFor(cfg.Scheme, cfg.Header), cfg.Key),
		}
		if cfg.HTTPClient != nil {
			topts = append(topts, transport.WithHTTPClient(cfg.HTTPClient))
		}

		var aopts []api.Option
		if cfg.SampleWindow > 0 {
			aopts = append(aopts, api.WithSampleWindow(cfg.SampleWindow))
		}
		c.source = api.New(transport.New(cfg.URL, topts...), aopts...)
		return nil
	}
}

// WithSource configures a custom catalog source.
func WithSource(src Source) Option {
	return func(c *config) error {
		c.source = src
		return nil
	}
}

// WithOutputDir configures the root of the documentation tree.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("outputDir", dir, "output directory must not be empty")
		}
		c.outputDir = dir
		return nil
	}
}

// WithFileExtension configures the extension of entity pages.
func WithFileExtension(ext string) Option {
	return func(c *config) error {
		if ext == "" {
			return errors.NewValidationError("fileExtension", ext, "file extension must not be empty")
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		c.fileExtension = ext
		return nil
	}
}

// WithComparisonSnapshot configures the flat catalog snapshot used by
// incremental runs. An empty path disables it.
func WithComparisonSnapshot(path string) Option {
	return func(c *config) error {
		c.comparisonSnapshot = path
		return nil
	}
}

// WithShapesDir configures the shape snapshot directory. An empty
// directory disables shape checks.
func WithShapesDir(dir string) Option {
	return func(c *config) error {
		c.shapesDir = dir
		return nil
	}
}

// WithReportPath configures where the validation report is written. An
// empty path disables the report.
func WithReportPath(path string) Option {
	return func(c *config) error {
		c.reportPath = path
		return nil
	}
}

// WithPageSize configures the catalog listing page size.
func WithPageSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.NewValidationError("pageSize", n, "page size must be positive")
		}
		c.pageSize = n
		return nil
	}
}

// WithBatchSize configures how many samples are fetched concurrently.
func WithBatchSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.NewValidationError("batchSize", n, "batch size must be positive")
		}
		c.batchSize = n
		return nil
	}
}

// WithSampleTimeout configures the per-fetch sample timeout.
func WithSampleTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.NewValidationError("sampleTimeout", d, "sample timeout must be positive")
		}
		c.sampleTimeout = d
		return nil
	}
}

// WithNamingRules replaces the identifier naming convention.
func WithNamingRules(rules []validator.NamingRule) Option {
	return func(c *config) error {
		c.namingRules = rules
		return nil
	}
}

// WithRenderer replaces the page renderer. A nil renderer disables pages.
func WithRenderer(r Renderer) Option {
	return func(c *config) error {
		c.renderer = r
		c.rendererSet = true
		return nil
	}
}
