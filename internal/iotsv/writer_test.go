package iotsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/bsfetch/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSortedUnionColumns(t *testing.T) {
	samples := []metadata.Sample{
		{
			"biosample_accession": "SAMN01",
			"strain":              "K12",
			"host":                "Homo sapiens",
		},
		{
			"biosample_accession": "SAMN02",
			"collection_date":     "2019-04-01",
		},
	}
	path := filepath.Join(t.TempDir(), "out.tsv")

	rows, cols, err := Write(samples, path)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 4, cols)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	// header is the sorted union of all keys
	assert.Equal(t,
		"biosample_accession\tcollection_date\thost\tstrain",
		lines[0],
	)
	// missing attributes render as empty fields
	assert.Equal(t, "SAMN01\t\tHomo sapiens\tK12", lines[1])
	assert.Equal(t, "SAMN02\t2019-04-01\t\t", lines[2])
}

func TestWriteKeepsCommasInsideFields(t *testing.T) {
	samples := []metadata.Sample{
		{
			"strain": "K12",
			"note":   "contains, a comma",
		},
	}
	path := filepath.Join(t.TempDir(), "out.tsv")

	_, _, err := Write(samples, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 2)
	// columns sort as [note strain]
	assert.Equal(t, "contains, a comma", fields[0])
	assert.Equal(t, "K12", fields[1])
}

func TestWriteEmptyResultSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	rows, cols, err := Write(nil, path)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)

	// no file is created
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteDeterministicColumnOrder(t *testing.T) {
	samples := []metadata.Sample{
		{"strain": "a", "host": "b", "note": "c", "sex": "d"},
	}
	dir := t.TempDir()

	var headers []string
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "out.tsv")
		_, _, err := Write(samples, path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		headers = append(
			headers,
			strings.SplitN(string(data), "\n", 2)[0],
		)
	}

	for _, h := range headers {
		assert.Equal(t, "host\tnote\tsex\tstrain", h)
	}
}

func TestPreview(t *testing.T) {
	samples := []metadata.Sample{
		{"strain": "one"},
		{"strain": "two"},
		{"strain": "three"},
		{"strain": "four"},
	}
	path := filepath.Join(t.TempDir(), "out.tsv")
	_, _, err := Write(samples, path)
	require.NoError(t, err)

	lines, err := Preview(path, 3)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "strain", lines[0])
	assert.Equal(t, "one", lines[1])
	assert.Equal(t, "two", lines[2])
}

func TestPreviewMissingFile(t *testing.T) {
	_, err := Preview(filepath.Join(t.TempDir(), "nope.tsv"), 3)
	assert.Error(t, err)
}
