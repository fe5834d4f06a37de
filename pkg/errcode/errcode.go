// Package errcode enumerates error codes for user-facing bsfetch errors.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	ReadInputFileError
	CreateOutputFileError
	PreviewOutputFileError

	// Configuration errors
	ReadConfigFileError
	GenerateConfigFileError

	// Logging errors
	CreateLogFileError
)
