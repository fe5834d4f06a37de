package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptEntrezBaseURL sets the root URL of the E-utilities endpoints.
func OptEntrezBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Entrez BaseURL", s) {
			c.Entrez.BaseURL = s
		}
	}
}

// OptEntrezEmail sets the contact address sent with every request.
func OptEntrezEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Entrez Email", s) {
			c.Entrez.Email = s
		}
	}
}

// OptEntrezAPIKey sets the optional NCBI API key. An empty key is
// allowed and means no key is sent.
func OptEntrezAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Entrez.APIKey = s
	}
}

// OptEntrezTool sets the client name sent with every request.
func OptEntrezTool(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Entrez Tool", s) {
			c.Entrez.Tool = s
		}
	}
}

// OptBatchDatabase selects the source collection for accession lookups.
// Valid values: "assembly", "nucleotide".
func OptBatchDatabase(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Batch.Database", s) {
			c.Batch.Database = s
		}
	}
}

// OptBatchDelay sets the pause in seconds between accessions.
func OptBatchDelay(f float64) Option {
	return func(c *Config) {
		if isValidSeconds("Batch Delay", f) {
			c.Batch.Delay = f
		}
	}
}

// OptBatchMaxRetries sets the number of attempts per accession.
func OptBatchMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch MaxRetries", i) {
			c.Batch.MaxRetries = i
		}
	}
}

// OptBatchRetryBackoff sets the fixed pause in seconds before a retry.
func OptBatchRetryBackoff(f float64) Option {
	return func(c *Config) {
		if isValidSeconds("Batch RetryBackoff", f) {
			c.Batch.RetryBackoff = f
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets the logging destination.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}
