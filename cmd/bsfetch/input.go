package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/bsfetch/pkg/errcode"
	"github.com/gnames/gn"
)

// readAccessions reads one accession per line from path, skipping blank
// lines. Leading and trailing whitespace is trimmed.
func readAccessions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readInputFileError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		res = append(res, line)
	}
	if err := sc.Err(); err != nil {
		return nil, readInputFileError(path, err)
	}

	return res, nil
}

func readInputFileError(path string, err error) error {
	msg := "Cannot read input file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadInputFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read input file: %w", err),
	}
}
