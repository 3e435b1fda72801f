// Package eval evaluates hypothesis sets of candidate variants against
// aligned reads: it enumerates a bounded power set of variant combinations,
// constructs the corresponding alternative sequences, scores every read
// against each, and marginalizes into per-variant posterior statistics.
package eval

import "github.com/dc-tw/eagle/likelihood"

// Opts configures the evaluation.
type Opts struct {
	// NumProc is the number of worker goroutines.
	NumProc int
	// DistLim groups variants within this many bases into one hypothesis set;
	// 0 disables grouping.
	DistLim int
	// ChainMode selects the grouping rule: variants.ChainGap or
	// variants.ChainAnchor.
	ChainMode int
	// Window, when positive, restricts likelihood scoring to a reference
	// window of +-Window bases around the variant set instead of the whole
	// chromosome.
	Window int
	// MaxH bounds the number of enumerated combinations beyond the mandatory
	// singletons and full set.
	MaxH int
	// MVH reports only the maximum-posterior combination.
	MVH bool
	// PAO considers primary alignments only.
	PAO bool
	// ISC trims soft-clipped bases before scoring.
	ISC bool
	// NoDup skips reads flagged as duplicates.
	NoDup bool
	// Splice splits reads with N CIGAR ops into exon segments.
	Splice bool
	// DP scores reads by affine-gap dynamic programming instead of the
	// windowed positional sum.
	DP bool
	// DPParams are the integer alignment scores for DP mode and for reads
	// without base qualities.
	DPParams likelihood.DPParams
	// HetBias is the prior bias towards non-homozygous hypotheses, in [0,1].
	HetBias float64
	// Omega is the prior probability that a read originates from an
	// unobserved paralogous locus.
	Omega float64
	// Verbose emits the per-read likelihood trace on stderr.
	Verbose bool
}

// DefaultOpts holds the documented defaults.
var DefaultOpts = Opts{
	NumProc:  1,
	DistLim:  10,
	MaxH:     1024,
	HetBias:  0.5,
	Omega:    1e-5,
	DPParams: likelihood.DefaultDPParams,
}
