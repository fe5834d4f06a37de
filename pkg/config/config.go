// Package config provides configuration management for bsfetch.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > bsfetch.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in bsfetch.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use BSFETCH_ prefix with underscores for nesting:
//
//	BSFETCH_ENTREZ_EMAIL=me@example.org
//	BSFETCH_ENTREZ_API_KEY=...
//	BSFETCH_BATCH_DELAY=0.4
//	BSFETCH_LOG_LEVEL=debug
package config

// Config represents the complete bsfetch configuration.
type Config struct {
	// Entrez contains NCBI E-utilities access settings.
	Entrez EntrezConfig `mapstructure:"entrez" yaml:"entrez"`

	// Batch contains settings for the batch fetch loop.
	Batch BatchConfig `mapstructure:"batch" yaml:"batch"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// EntrezConfig contains NCBI E-utilities access parameters.
type EntrezConfig struct {
	// BaseURL is the root of the E-utilities endpoints. Overridden in
	// tests to point at a local server.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Email is the contact address sent with every request, required by
	// NCBI usage policy. It is not otherwise validated.
	Email string `mapstructure:"email" yaml:"email"`

	// APIKey is an optional NCBI API key. With a key NCBI allows a
	// higher request rate.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Tool is the client name sent with every request.
	Tool string `mapstructure:"tool" yaml:"tool"`
}

// BatchConfig contains settings for the batch fetch loop.
type BatchConfig struct {
	// Database selects which collection accessions are resolved
	// against. Valid values: "assembly", "nucleotide".
	Database string `mapstructure:"database" yaml:"database"`

	// Delay is the pause in seconds between accessions, applied
	// regardless of success or failure to respect NCBI rate limits.
	Delay float64 `mapstructure:"delay" yaml:"delay"`

	// MaxRetries is the number of attempts per accession when the
	// remote service fails at the transport level.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// RetryBackoff is the fixed pause in seconds before a retry.
	RetryBackoff float64 `mapstructure:"retry_backoff" yaml:"retry_backoff"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Entrez: EntrezConfig{
			BaseURL: "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/",
			Email:   "user@example.com",
			Tool:    AppName,
		},
		Batch: BatchConfig{
			Database:     "assembly",
			Delay:        0.5,
			MaxRetries:   3,
			RetryBackoff: 2,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
			// progress bar and user messages go to stdout, logs to stderr
			Destination: "stderr",
		},
	}

	return res
}
