package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/metricdocs/pkg/constants"
	pkgerrors "github.com/agentstation/metricdocs/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "METRICDOCS"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog API
	APIURL     string
	APIKey     string
	AuthScheme string
	AuthHeader string

	// Paths
	OutputDir          string
	FileExtension      string
	ComparisonSnapshot string
	ShapesDir          string
	ReportPath         string

	// Sizes and budgets
	PageSize      int
	BatchSize     int
	SampleTimeout time.Duration
	SampleWindow  time.Duration
	UpdateOnly    bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (METRICDOCS_*)
// 3. .env files
// 4. Config file (./.metricdocs.yaml or ~/.metricdocs.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file instead of searching for one. An empty path searches.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".metricdocs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" {
			return nil, pkgerrors.NewConfigError("config", "reading "+v.ConfigFileUsed(), err)
		}
	}

	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		APIURL:     v.GetString("api_url"),
		APIKey:     v.GetString("api_key"),
		AuthScheme: v.GetString("auth_scheme"),
		AuthHeader: v.GetString("auth_header"),

		OutputDir:          v.GetString("output_dir"),
		FileExtension:      v.GetString("file_extension"),
		ComparisonSnapshot: v.GetString("comparison_snapshot"),
		ShapesDir:          v.GetString("shapes_dir"),
		ReportPath:         v.GetString("report_path"),

		PageSize:      v.GetInt("page_size"),
		BatchSize:     v.GetInt("batch_size"),
		SampleTimeout: v.GetDuration("sample_timeout"),
		SampleWindow:  v.GetDuration("sample_window"),
		UpdateOnly:    v.GetBool("update_only"),

		// LOG_LEVEL is read without the prefix, like every other tool
		// built on pkg/logging. Empty leaves -v/-q in charge.
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("file_extension", constants.DefaultFileExtension)
	v.SetDefault("comparison_snapshot", constants.DefaultComparisonSnapshot)
	v.SetDefault("shapes_dir", constants.DefaultShapesDir)
	v.SetDefault("report_path", constants.DefaultReportPath)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("batch_size", constants.DefaultBatchSize)
	v.SetDefault("sample_timeout", constants.DefaultSampleTimeout)
	v.SetDefault("sample_window", constants.DefaultSampleWindow)
	v.SetDefault("auth_scheme", "bearer")
}

// Validate checks the settings every API-backed command needs.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return pkgerrors.NewConfigError("api", "api_url is required (set "+EnvPrefix+"_API_URL)", nil)
	}
	if c.APIKey == "" && c.AuthScheme != "none" {
		return pkgerrors.NewConfigError("api", "api_key is required (set "+EnvPrefix+"_API_KEY)", nil)
	}
	return nil
}

// UpdateFromFlags applies the parsed global flags. Flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first; godotenv never overrides a set variable.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
