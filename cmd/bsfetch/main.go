// Package main provides the bsfetch CLI application.
// bsfetch resolves NCBI accession numbers to their linked BioSample
// records and flattens the sample attributes into a tab-delimited table.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
