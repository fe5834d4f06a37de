package iobatch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gnames/bsfetch/pkg/config"
	"github.com/gnames/bsfetch/pkg/eutils"
	"github.com/gnames/bsfetch/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is an in-memory eutils.Client for driver tests.
type stubClient struct {
	// accession -> search ids
	searchIDs map[string][]string
	// search id -> linked biosample ids
	links map[string][]string
	// biosample id -> record
	samples map[string]*eutils.BioSample
	// biosample id -> number of transport failures before efetch succeeds
	fetchFailures map[string]int

	searchDBs []eutils.DB
}

func (s *stubClient) Search(
	_ context.Context, db eutils.DB, term string,
) ([]string, error) {
	s.searchDBs = append(s.searchDBs, db)
	return s.searchIDs[term], nil
}

func (s *stubClient) Link(
	_ context.Context, _, _ eutils.DB, id string,
) ([]string, error) {
	return s.links[id], nil
}

func (s *stubClient) FetchBioSample(
	_ context.Context, id string,
) (*eutils.BioSample, error) {
	if s.fetchFailures[id] > 0 {
		s.fetchFailures[id]--
		return nil, &eutils.TransportError{
			Op:  "efetch",
			Err: errors.New("connection reset"),
		}
	}
	return s.samples[id], nil
}

// newStub wires n accessions ACC-1..ACC-n, each resolving to one
// BioSample with a strain attribute.
func newStub(n int) *stubClient {
	s := &stubClient{
		searchIDs:     make(map[string][]string),
		links:         make(map[string][]string),
		samples:       make(map[string]*eutils.BioSample),
		fetchFailures: make(map[string]int),
	}
	for i := 1; i <= n; i++ {
		acc := fmt.Sprintf("ACC-%d", i)
		searchID := fmt.Sprintf("id-%d", i)
		bsID := fmt.Sprintf("bs-%d", i)
		s.searchIDs[acc] = []string{searchID}
		s.links[searchID] = []string{bsID}
		s.samples[bsID] = &eutils.BioSample{
			Accession: fmt.Sprintf("SAMN%08d", i),
			Attributes: []eutils.Attribute{
				{Name: "strain", Value: fmt.Sprintf("strain-%d", i)},
			},
		}
	}
	return s
}

func newTestDriver(stub *stubClient) (*Driver, *[]time.Duration) {
	cfg := config.New()
	d := New(cfg, stub)
	var slept []time.Duration
	d.sleep = func(dur time.Duration) {
		slept = append(slept, dur)
	}
	return d, &slept
}

func accList(n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = fmt.Sprintf("ACC-%d", i+1)
	}
	return res
}

func TestRunAllSucceed(t *testing.T) {
	stub := newStub(3)
	d, slept := newTestDriver(stub)

	res := d.Run(context.Background(), accList(3))

	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Samples, 3)

	// insertion order follows input order
	for i, sample := range res.Samples {
		assert.Equal(t,
			fmt.Sprintf("ACC-%d", i+1),
			sample[metadata.KeyAssembly],
		)
		assert.Equal(t, fmt.Sprintf("strain-%d", i+1), sample["strain"])
	}

	// inter-request delay between accessions, none after the last one
	require.Len(t, *slept, 2)
	for _, dur := range *slept {
		assert.Equal(t, 500*time.Millisecond, dur)
	}
}

func TestRunNotFoundAmongSuccesses(t *testing.T) {
	stub := newStub(3)
	// search returns zero ids for the second accession
	stub.searchIDs["ACC-2"] = nil
	d, _ := newTestDriver(stub)

	res := d.Run(context.Background(), accList(3))

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Samples, 2)
	assert.Equal(t, "ACC-1", res.Samples[0][metadata.KeyAssembly])
	assert.Equal(t, "ACC-3", res.Samples[1][metadata.KeyAssembly])

	// NotFound is final: one search, no retries for ACC-2
	assert.Len(t, stub.searchDBs, 3)
}

func TestRunNoLinkIsNotRetried(t *testing.T) {
	stub := newStub(1)
	stub.links["id-1"] = nil
	d, slept := newTestDriver(stub)

	res := d.Run(context.Background(), accList(1))

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, res.Samples)
	// no backoff sleeps, no inter-request delay after the only item
	assert.Empty(t, *slept)
}

func TestRunRetriesTransportErrors(t *testing.T) {
	stub := newStub(1)
	acc := "GCA_000000000.1"
	stub.searchIDs[acc] = []string{"id-1"}
	// efetch fails twice, succeeds on the third attempt
	stub.fetchFailures["bs-1"] = 2
	d, slept := newTestDriver(stub)

	res := d.Run(context.Background(), []string{acc})

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Samples, 1)
	assert.Equal(t, acc, res.Samples[0][metadata.KeyAssembly])
	assert.Equal(t, "SAMN00000001", res.Samples[0][metadata.KeyBioSample])

	// two fixed 2s backoffs, no inter-request delay after the last item
	require.Len(t, *slept, 2)
	assert.Equal(t, 2*time.Second, (*slept)[0])
	assert.Equal(t, 2*time.Second, (*slept)[1])
}

func TestRunRetriesExhausted(t *testing.T) {
	stub := newStub(1)
	stub.fetchFailures["bs-1"] = 10
	d, slept := newTestDriver(stub)

	res := d.Run(context.Background(), accList(1))

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, res.Samples)
	// MaxRetries=3 attempts produce two backoff sleeps
	assert.Len(t, *slept, 2)
}

func TestRunEmptyInput(t *testing.T) {
	stub := newStub(0)
	d, slept := newTestDriver(stub)

	res := d.Run(context.Background(), nil)

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Samples)
	assert.Empty(t, *slept)
}

func TestRunNucleotideSource(t *testing.T) {
	stub := newStub(1)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptBatchDatabase("nucleotide")})
	d := New(cfg, stub)
	d.sleep = func(time.Duration) {}

	res := d.Run(context.Background(), accList(1))

	require.Len(t, res.Samples, 1)
	sample := res.Samples[0]
	assert.Equal(t, "ACC-1", sample[metadata.KeyNucleotide])
	_, hasAssemblyTag := sample[metadata.KeyAssembly]
	assert.False(t, hasAssemblyTag)

	// searches went to nuccore, the Entrez name for nucleotide
	require.Len(t, stub.searchDBs, 1)
	assert.Equal(t, eutils.DBNucleotide, stub.searchDBs[0])
}

func TestRunKeysStayWithinAllowList(t *testing.T) {
	stub := newStub(1)
	stub.samples["bs-1"].Attributes = append(
		stub.samples["bs-1"].Attributes,
		eutils.Attribute{Name: "secret_internal_field", Value: "x"},
		eutils.Attribute{Name: "", Value: "nameless"},
	)
	d, _ := newTestDriver(stub)

	res := d.Run(context.Background(), accList(1))

	require.Len(t, res.Samples, 1)
	for key := range res.Samples[0] {
		if key == metadata.KeyBioSample || key == metadata.KeyAssembly {
			continue
		}
		_, ok := metadata.KnownAttributes[key]
		assert.True(t, ok, "unexpected key %q", key)
	}
}

func TestRunCancelledContext(t *testing.T) {
	stub := newStub(3)
	d, _ := newTestDriver(stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := d.Run(ctx, accList(3))

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
}
