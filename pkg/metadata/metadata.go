// Package metadata provides the sample attribute model and the fixed
// allow-list of BioSample attribute names recognized by bsfetch.
//
// The allow-list is process-wide immutable state. Attributes outside the
// list are dropped during conversion; the list is intentionally open-ended
// and can be extended here without touching the rest of the pipeline.
package metadata

import "github.com/gnames/bsfetch/pkg/eutils"

// Reserved keys added outside the allow-list filtering.
const (
	// KeyBioSample holds the canonical BioSample accession of a record.
	KeyBioSample = "biosample_accession"

	// KeyAssembly tags a sample with the assembly accession it was
	// resolved from.
	KeyAssembly = "assembly_accession"

	// KeyNucleotide tags a sample with the nucleotide accession it was
	// resolved from.
	KeyNucleotide = "nucleotide_accession"
)

// KnownAttributes is the set of BioSample attribute names that survive
// into the output table. Extend as needed.
var KnownAttributes = map[string]struct{}{
	"strain":               {},
	"collection_date":      {},
	"depth":                {},
	"env_broad_scale":      {},
	"env_local_scale":      {},
	"env_medium":           {},
	"geo_loc_name":         {},
	"isol_growth_condt":    {},
	"lat_lon":              {},
	"num_replicons":        {},
	"ref_biomaterial":      {},
	"type-material":        {},
	"isolation_source":     {},
	"collected_by":         {},
	"host":                 {},
	"tissue":               {},
	"age":                  {},
	"sex":                  {},
	"dev_stage":            {},
	"biomaterial_provider": {},
	"culture_collection":   {},
	"specimen_voucher":     {},
	"cultivar":             {},
	"ecotype":              {},
	"isolate":              {},
	"sub_strain":           {},
	"cell_line":            {},
	"cell_type":            {},
	"serovar":              {},
	"serotype":             {},
	"pathovar":             {},
	"genotype":             {},
	"phenotype":            {},
	"note":                 {},
	"temp":                 {},
	"altitude":             {},
	"sample_type":          {},
	"BioSampleModel":       {},
	"organism":             {},
}

// Sample is the normalized attribute mapping describing one biological
// specimen. Keys are attribute names, values their string content.
// A Sample is never mutated after the batch driver tags it with its
// source accession.
type Sample map[string]string

// NewSample converts a raw BioSample record into a Sample, applying the
// allow-list. The record accession, when present, is stored under
// biosample_accession. An attribute with a missing name is treated as
// "unknown" and therefore dropped. The result may legitimately contain
// only the biosample_accession key.
func NewSample(bs *eutils.BioSample) Sample {
	res := Sample{}

	if bs.Accession != "" {
		res[KeyBioSample] = bs.Accession
	}

	for _, attr := range bs.Attributes {
		name := attr.Name
		if name == "" {
			name = "unknown"
		}
		if _, ok := KnownAttributes[name]; ok || name == KeyBioSample {
			res[name] = attr.Value
		}
	}

	return res
}
