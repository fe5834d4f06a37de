package iotsv

import (
	"fmt"

	"github.com/gnames/bsfetch/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateOutputFileError creates an error for when the output file cannot
// be created.
func CreateOutputFileError(path string, err error) error {
	msg := "Cannot create output file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateOutputFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create output file: %w", err),
	}
}

// WriteOutputError creates an error for when writing table rows fails.
func WriteOutputError(path string, err error) error {
	msg := "Cannot write table to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateOutputFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write table: %w", err),
	}
}

// PreviewOutputError creates an error for when the written table cannot
// be read back for the preview.
func PreviewOutputError(path string, err error) error {
	msg := "Cannot preview output file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.PreviewOutputFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot preview output file: %w", err),
	}
}
