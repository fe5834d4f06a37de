// Package eutils defines the contract for the NCBI Entrez E-utilities
// client used by bsfetch.
//
// This package has no I/O dependencies. The HTTP implementation lives in
// internal/ioeutils; tests substitute their own Client.
//
// Three logical remote operations cover the whole workflow:
//   - Search: esearch, accession string -> internal record ids
//   - Link: elink, cross-reference an id from one database into another
//   - FetchBioSample: efetch, internal id -> full BioSample record
//
// Each operation distinguishes a defined empty outcome (no ids, no links,
// no record) from a transport failure. Empty outcomes are returned as empty
// results with a nil error; transport failures are returned as
// *TransportError so callers can retry them.
package eutils

import (
	"context"
	"errors"
	"fmt"
)

// DB identifies an Entrez database.
type DB string

const (
	// DBAssembly is the genome assembly database.
	DBAssembly DB = "assembly"

	// DBNucleotide is the nucleotide sequence database. Entrez accepts
	// both "nucleotide" and "nuccore"; nuccore is the canonical name
	// used by elink link names.
	DBNucleotide DB = "nuccore"

	// DBBioSample is the biological sample metadata database.
	DBBioSample DB = "biosample"
)

// Attribute is one name/value pair from a BioSample record.
type Attribute struct {
	Name  string
	Value string
}

// BioSample is a raw BioSample record as returned by efetch, before
// allow-list filtering.
type BioSample struct {
	// Accession is the canonical BioSample accession (e.g. SAMN12345678).
	Accession string

	Attributes []Attribute
}

// Client provides the three Entrez operations bsfetch needs.
// Implementations must preserve the relevance ordering of ids returned
// by the remote service.
type Client interface {
	// Search returns the internal ids matching term in db. An empty
	// result is a defined outcome, not an error.
	Search(ctx context.Context, db DB, term string) ([]string, error)

	// Link returns the ids in 'to' that are cross-referenced from id in
	// 'from'. An empty result is a defined outcome, not an error.
	Link(ctx context.Context, from, to DB, id string) ([]string, error)

	// FetchBioSample retrieves the full BioSample record for id.
	// A nil record with a nil error means the remote service returned
	// no record.
	FetchBioSample(ctx context.Context, id string) (*BioSample, error)
}

// TransportError wraps a network, protocol or HTTP-status failure of a
// single Entrez operation. Transport errors are retryable; defined empty
// outcomes are not and never produce a TransportError.
type TransportError struct {
	// Op names the failing operation: "esearch", "elink" or "efetch".
	Op string

	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("entrez %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
