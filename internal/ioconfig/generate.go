package ioconfig

import (
	"fmt"
	"os"

	"github.com/gnames/bsfetch/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# bsfetch configuration file.
#
# Every value here can be overridden by a BSFETCH_* environment variable
# or a CLI flag. Precedence: flags > env vars > this file > defaults.
#
# entrez.email is sent with every request, as required by NCBI usage
# policy. Set it to a real address. An entrez.api_key raises the allowed
# request rate.

`

// ConfigFileExists reports whether the default config file is present.
func ConfigFileExists() (bool, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DefaultConfigPath returns the full path to the default config file.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return config.ConfigFilePath(homeDir), nil
}

// GenerateDefaultConfig creates a documented default config file at the
// default location. Returns the path where the file was created.
// Does NOT overwrite an existing file.
func GenerateDefaultConfig() (string, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}

	exists, err := ConfigFileExists()
	if err != nil {
		return "", GenerateConfigFileError(path, err)
	}
	if exists {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", GenerateConfigFileError(path, err)
	}
	if err := os.MkdirAll(config.ConfigDir(homeDir), 0755); err != nil {
		return "", GenerateConfigFileError(path, err)
	}

	data, err := yaml.Marshal(config.New())
	if err != nil {
		return "", GenerateConfigFileError(path, err)
	}

	content := append([]byte(configHeader), data...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", GenerateConfigFileError(path, err)
	}

	return path, nil
}
