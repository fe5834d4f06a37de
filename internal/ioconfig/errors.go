package ioconfig

import (
	"fmt"

	"github.com/gnames/bsfetch/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadConfigFileError creates an error for when a config file cannot be
// read or parsed.
func ReadConfigFileError(path string, err error) error {
	msg := "Cannot read config file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadConfigFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read config file: %w", err),
	}
}

// GenerateConfigFileError creates an error for when the default config
// file cannot be generated.
func GenerateConfigFileError(path string, err error) error {
	msg := "Cannot generate config file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.GenerateConfigFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot generate config file: %w", err),
	}
}
