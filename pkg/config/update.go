package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for bsfetch.yaml.
// Used for round-tripping bsfetch.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string

	s = c.Entrez.BaseURL
	if s != "" {
		res = append(res, OptEntrezBaseURL(s))
	}
	s = c.Entrez.Email
	if s != "" {
		res = append(res, OptEntrezEmail(s))
	}
	s = c.Entrez.APIKey
	if s != "" {
		res = append(res, OptEntrezAPIKey(s))
	}
	s = c.Entrez.Tool
	if s != "" {
		res = append(res, OptEntrezTool(s))
	}

	s = c.Batch.Database
	if s != "" {
		res = append(res, OptBatchDatabase(s))
	}
	if c.Batch.Delay > 0 {
		res = append(res, OptBatchDelay(c.Batch.Delay))
	}
	if c.Batch.MaxRetries > 0 {
		res = append(res, OptBatchMaxRetries(c.Batch.MaxRetries))
	}
	if c.Batch.RetryBackoff > 0 {
		res = append(res, OptBatchRetryBackoff(c.Batch.RetryBackoff))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidSeconds(name string, f float64) bool {
	res := f >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %v", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Batch.Database":  {"assembly": s, "nucleotide": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	gn.Warn("<em>%s</em> '%s' is unknown, ignoring. Valid values:\n%s",
		name, val, strings.Join(lines, "\n"))
	return false
}
