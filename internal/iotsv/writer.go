// Package iotsv writes sample metadata as a tab-delimited table.
//
// Tabs are used instead of commas because free-text BioSample values
// (geographic names, isolation sources, notes) routinely contain commas.
package iotsv

import (
	"bufio"
	"encoding/csv"
	"maps"
	"os"
	"slices"

	"github.com/gnames/bsfetch/pkg/metadata"
)

// Write converts samples into a rectangular table and writes it to path.
// Columns are the lexicographically sorted union of all attribute names,
// so column order is deterministic across runs. Missing attributes render
// as empty fields. Returns the number of data rows and columns written.
//
// With no samples, nothing is written, no file is created, and
// (0, 0, nil) is returned.
func Write(samples []metadata.Sample, path string) (int, int, error) {
	if len(samples) == 0 {
		return 0, 0, nil
	}

	cols := columns(samples)

	f, err := os.Create(path)
	if err != nil {
		return 0, 0, CreateOutputFileError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(cols); err != nil {
		return 0, 0, WriteOutputError(path, err)
	}

	row := make([]string, len(cols))
	for _, sample := range samples {
		for i, col := range cols {
			row[i] = sample[col]
		}
		if err := w.Write(row); err != nil {
			return 0, 0, WriteOutputError(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, 0, WriteOutputError(path, err)
	}

	return len(samples), len(cols), nil
}

// Preview returns up to n lines from the beginning of the file at path.
func Preview(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, PreviewOutputError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	// attribute-rich rows can exceed the default scanner buffer
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() && len(res) < n {
		res = append(res, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, PreviewOutputError(path, err)
	}

	return res, nil
}

// columns returns the sorted union of all attribute names in samples.
func columns(samples []metadata.Sample) []string {
	set := make(map[string]struct{})
	for _, sample := range samples {
		for k := range sample {
			set[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
