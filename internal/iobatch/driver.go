// Package iobatch implements the sequential batch-fetch loop that turns a
// list of accessions into BioSample metadata records.
//
// One accession is resolved and fetched before the next begins. Two timing
// concerns are kept separate: a fixed backoff before retrying a transport
// failure, and an unconditional delay between accessions that respects NCBI
// rate limits.
package iobatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/bsfetch/pkg/config"
	"github.com/gnames/bsfetch/pkg/eutils"
	"github.com/gnames/bsfetch/pkg/metadata"
)

// errNotFound marks the defined empty outcomes: search returned no ids,
// no cross-reference link exists, or the fetched record set is empty.
// These are terminal for an accession and are never retried, unlike
// transport errors.
var errNotFound = errors.New("not found")

// Result accumulates the outcome of one batch run. Samples keeps input
// order and never shrinks.
type Result struct {
	Samples   []metadata.Sample
	Succeeded int
	Failed    int
}

// Driver processes an ordered list of accessions against the configured
// source database.
type Driver struct {
	cfg    *config.Config
	client eutils.Client

	// sleep is replaced in tests to avoid real waits
	sleep func(time.Duration)
}

// New creates a batch Driver.
func New(cfg *config.Config, client eutils.Client) *Driver {
	return &Driver{
		cfg:    cfg,
		client: client,
		sleep:  time.Sleep,
	}
}

// Run processes accessions sequentially and returns the accumulated
// result. Per-accession failures never abort the batch. Cancelling ctx
// stops the run between attempts.
func (d *Driver) Run(ctx context.Context, accessions []string) *Result {
	res := &Result{}
	if len(accessions) == 0 {
		return res
	}

	db, tagKey := d.source()

	bar := newProgressBar(len(accessions), "Fetching BioSample metadata")
	defer bar.Finish()

	for i, acc := range accessions {
		if ctx.Err() != nil {
			slog.Warn("Run cancelled", "processed", i)
			break
		}

		sample, err := d.fetchOne(ctx, db, acc)
		if err != nil {
			res.Failed++
		} else {
			sample[tagKey] = acc
			res.Samples = append(res.Samples, sample)
			res.Succeeded++
		}

		bar.Increment()

		// rate limiting; no sleep after the last accession
		if i < len(accessions)-1 {
			d.sleep(seconds(d.cfg.Batch.Delay))
		}
	}

	return res
}

// source maps the configured database name to the Entrez database and the
// key used to tag samples with their originating accession.
func (d *Driver) source() (eutils.DB, string) {
	if d.cfg.Batch.Database == "nucleotide" {
		return eutils.DBNucleotide, metadata.KeyNucleotide
	}
	return eutils.DBAssembly, metadata.KeyAssembly
}

// fetchOne resolves and fetches one accession with up to MaxRetries
// attempts. NotFound outcomes are final; transport errors wait a fixed
// backoff and retry.
func (d *Driver) fetchOne(
	ctx context.Context,
	db eutils.DB,
	acc string,
) (metadata.Sample, error) {
	maxRetries := d.cfg.Batch.MaxRetries
	backoff := seconds(d.cfg.Batch.RetryBackoff)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var sample metadata.Sample
		sample, err = d.attempt(ctx, db, acc)
		if err == nil {
			return sample, nil
		}

		if errors.Is(err, errNotFound) {
			// the remote data genuinely does not exist
			return nil, err
		}

		if attempt < maxRetries {
			slog.Warn("Attempt failed, retrying",
				"accession", acc,
				"attempt", attempt,
				"error", err,
			)
			d.sleep(backoff)
		}
	}

	slog.Error("Giving up after retries",
		"accession", acc,
		"attempts", maxRetries,
		"error", err,
	)
	return nil, err
}

// attempt runs resolve then fetchSample once.
func (d *Driver) attempt(
	ctx context.Context,
	db eutils.DB,
	acc string,
) (metadata.Sample, error) {
	id, err := d.resolve(ctx, db, acc)
	if err != nil {
		return nil, err
	}
	return d.fetchSample(ctx, acc, id)
}

// resolve maps an accession to the id of its linked BioSample record.
// The first id of each remote response is taken; ties are broken by the
// remote service's own relevance ordering.
func (d *Driver) resolve(
	ctx context.Context,
	db eutils.DB,
	acc string,
) (string, error) {
	ids, err := d.client.Search(ctx, db, acc)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		slog.Warn("No record found", "db", db, "accession", acc)
		return "", fmt.Errorf("%w: no %s record for %s", errNotFound, db, acc)
	}

	links, err := d.client.Link(ctx, db, eutils.DBBioSample, ids[0])
	if err != nil {
		return "", err
	}
	if len(links) == 0 {
		slog.Warn("No BioSample linked", "accession", acc)
		return "", fmt.Errorf("%w: no biosample link for %s", errNotFound, acc)
	}

	return links[0], nil
}

// fetchSample retrieves a BioSample record and flattens it through the
// attribute allow-list. The accession is kept for traceability in logs.
func (d *Driver) fetchSample(
	ctx context.Context,
	acc, id string,
) (metadata.Sample, error) {
	bs, err := d.client.FetchBioSample(ctx, id)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		slog.Warn("Empty BioSample record",
			"accession", acc, "biosample_id", id)
		return nil, fmt.Errorf(
			"%w: empty biosample record for %s", errNotFound, acc)
	}

	return metadata.NewSample(bs), nil
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
