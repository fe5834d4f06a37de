package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAccessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accessions.txt")
	content := `GCA_000005845.2

GCA_048058675.1
   GCA_000006945.2

`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	res, err := readAccessions(path)
	require.NoError(t, err)

	// blank lines ignored, whitespace trimmed, order preserved
	assert.Equal(t, []string{
		"GCA_000005845.2",
		"GCA_048058675.1",
		"GCA_000006945.2",
	}, res)
}

func TestReadAccessionsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accessions.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	res, err := readAccessions(path)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestReadAccessionsMissingFile(t *testing.T) {
	_, err := readAccessions(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestRootCmdRequiresTwoArgs(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
	}{
		{"no args", []string{}},
		{"one arg", []string{"in.txt"}},
		{"three args", []string{"in.txt", "out.tsv", "extra"}},
	}

	for _, v := range tests {
		cmd := getRootCmd()
		cmd.SetArgs(v.args)
		err := cmd.Execute()
		assert.Error(t, err, v.msg)
	}
}
