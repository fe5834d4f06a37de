// Package ioconfig provides I/O operations for loading and generating
// configuration files. This is an impure package that handles file system
// and environment operations.
package ioconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/bsfetch/pkg/config"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and returns a Config with
// defaults applied underneath. If configPath is empty, it searches default
// locations:
//   - ./bsfetch.yaml
//   - ~/.config/bsfetch/bsfetch.yaml
//
// Environment variables with the BSFETCH_ prefix override file values.
// Invalid values are rejected with warnings and fall back to defaults.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		// Use explicit config path
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName(config.AppName)
		v.AddConfigPath(".")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(config.ConfigDir(homeDir))
		}
	}

	initEnvVars(v)

	cfg := config.New()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicitly named config file must be readable.
			if configPath != "" {
				return nil, ReadConfigFileError(configPath, err)
			}
			if _, statErr := os.Stat(
				filepath.Join(".", config.AppName+".yaml"),
			); statErr == nil {
				return nil, ReadConfigFileError(config.AppName+".yaml", err)
			}
		}
		// No config file found: defaults plus env overrides.
	}

	var fileCfg config.Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, ReadConfigFileError(v.ConfigFileUsed(), err)
	}

	// Route everything through options so invalid values are rejected
	// with warnings instead of corrupting the config.
	cfg.Update(fileCfg.ToOptions())

	return cfg, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed.
	v.SetEnvPrefix("BSFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Entrez configuration
	v.BindEnv("entrez.base_url", "BSFETCH_ENTREZ_BASE_URL")
	v.BindEnv("entrez.email", "BSFETCH_ENTREZ_EMAIL")
	v.BindEnv("entrez.api_key", "BSFETCH_ENTREZ_API_KEY")
	v.BindEnv("entrez.tool", "BSFETCH_ENTREZ_TOOL")

	// Batch configuration
	v.BindEnv("batch.database", "BSFETCH_BATCH_DATABASE")
	v.BindEnv("batch.delay", "BSFETCH_BATCH_DELAY")
	v.BindEnv("batch.max_retries", "BSFETCH_BATCH_MAX_RETRIES")
	v.BindEnv("batch.retry_backoff", "BSFETCH_BATCH_RETRY_BACKOFF")

	// Log configuration
	v.BindEnv("log.level", "BSFETCH_LOG_LEVEL")
	v.BindEnv("log.format", "BSFETCH_LOG_FORMAT")
	v.BindEnv("log.destination", "BSFETCH_LOG_DESTINATION")

	v.AutomaticEnv()
}
