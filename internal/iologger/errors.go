package iologger

import (
	"fmt"

	"github.com/gnames/bsfetch/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError creates an error for when the log file cannot be
// opened for writing.
func CreateLogFileError(path string, err error) error {
	msg := "Cannot create log file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create log file: %w", err),
	}
}
