package eval

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dc-tw/eagle/align"
	"github.com/dc-tw/eagle/likelihood"
	"github.com/dc-tw/eagle/refseq"
	"github.com/dc-tw/eagle/variants"
)

// refPrior is the prior on the reference hypothesis.
var refPrior = math.Log(0.5)

// unambiguousDiff is the log-likelihood margin (~ln 2) beyond which a read
// counts as unambiguously supporting one hypothesis.
const unambiguousDiff = 0.69

// xaNearVariant is the distance within which a same-chromosome alternative
// alignment is re-scored against the variant-edited sequence.
const xaNearVariant = 50

// EvaluateSet scores one hypothesis set and returns its output rows, one per
// variant, as a single string.  A set whose region contains no reads returns
// "".  All variants in the set share a chromosome by construction.
func EvaluateSet(set []*variants.Variant, bamPath string, cache *refseq.Cache, opts *Opts) (string, error) {
	n := len(set)
	// VCF positions are 1-based; the collaborator region is 0-based.
	beg := set[0].Pos - 2
	end := set[n-1].Pos - 1
	reads, err := align.FetchReads(bamPath, set[0].Chr, beg, end, align.FetchOpts{
		TrimSoftClips: opts.ISC,
		SplitSpliced:  opts.Splice,
	})
	if err != nil {
		return "", err
	}
	if len(reads) == 0 {
		return "", nil
	}
	entry, err := cache.Fetch(set[0].Chr)
	if err != nil {
		return "", err
	}
	return evaluateReads(set, reads, entry, cache, opts)
}

// evaluateReads scores the fetched reads of one hypothesis set against every
// variant combination and marginalizes into per-variant rows.  cache is only
// consulted for XA alternative-alignment chromosomes.
func evaluateReads(set []*variants.Variant, reads []*align.Read, entry *refseq.Entry, cache *refseq.Cache, opts *Opts) (string, error) {
	n := len(set)
	combos := Combinations(n, opts.MaxH)
	varCombos := make([][]*variants.Variant, len(combos))
	for s, combo := range combos {
		vc := make([]*variants.Variant, len(combo))
		for i, vi := range combo {
			vc[i] = set[vi]
		}
		varCombos[s] = vc
	}

	off := 0
	refWin := entry.Seq
	if opts.Window > 0 {
		off = set[0].Pos - 1 - opts.Window
		if off < 0 {
			off = 0
		}
		hi := set[n-1].Pos + opts.Window
		if hi > len(entry.Seq) {
			hi = len(entry.Seq)
		}
		refWin = entry.Seq[off:hi]
	}

	lambda := math.Log(opts.Omega) - math.Log(1-opts.Omega)
	altPrior := math.Log(0.5 * (1 - opts.HetBias))
	hetPrior := math.Log(0.5 * opts.HetBias)
	if n > 1 && !opts.MVH {
		altPrior = math.Log(0.5 * (1 - opts.HetBias) / float64(len(combos)))
		hetPrior = math.Log(0.5 * opts.HetBias / float64(len(combos)))
	}

	score := func(m *likelihood.ProbMatrix, seq []byte, off, pos int) float64 {
		if opts.DP {
			return m.ScoreDP(seq, pos-off, opts.DPParams)
		}
		return m.ScoreWindowed(seq, pos-off)
	}

	ref := 0.0
	alt := make([]float64, len(combos))
	het := make([]float64, len(combos))
	refCount := make([]int, len(combos))
	altCount := make([]int, len(combos))
	pout := make([]float64, len(reads))
	prgu := make([]float64, len(reads))

	for seti, combo := range varCombos {
		altseq := ConstructAltSeq(refWin, off, combo)

		for ri, r := range reads {
			if r.Unmapped() {
				continue
			}
			if opts.PAO && r.Secondary() {
				continue
			}
			if opts.NoDup && r.Duplicate() {
				continue
			}

			var m *likelihood.ProbMatrix
			if r.HasQual {
				m = likelihood.NewProbMatrix(r.Seq, r.Qual)
			} else {
				m = likelihood.NewScoreMatrix(r.Seq, opts.DPParams)
			}

			// The reference probability and the outside-paralog probability
			// depend only on the read; compute them on the first combination.
			elsewhere := 0.0
			if seti == 0 {
				elsewhere = m.Elsewhere(r.InferredLength)
				pout[ri] = elsewhere
				prgu[ri] = score(m, refWin, off, r.Pos)
			}
			prgv := score(m, altseq, off, r.Pos)

			if !opts.PAO && len(r.Multimap) > 0 {
				for _, xa := range r.Multimap {
					xaEntry, err := cache.Fetch(xa.Chr)
					if err != nil {
						return "", err
					}
					mx := m
					if (xa.Pos < 0 && !r.Reverse()) || (xa.Pos > 0 && r.Reverse()) {
						// Opposite strand from the primary alignment.
						mx = m.ReverseComplemented(r.Seq)
					}
					xaPos := xa.Pos
					if xaPos < 0 {
						xaPos = -xaPos
					}
					xaPos--
					readProb := score(mx, xaEntry.Seq, 0, xaPos)
					if seti == 0 {
						// Each extra mapping multiplies the elsewhere mass.
						pout[ri] = likelihood.LogAddExp(pout[ri], elsewhere)
						prgu[ri] = likelihood.LogAddExp(prgu[ri], readProb)
					}
					if xa.Chr == r.Chr && abs(xaPos-combo[0].Pos) < xaNearVariant {
						readProb = score(mx, altseq, off, xaPos)
					}
					prgv = likelihood.LogAddExp(prgv, readProb)
				}
			}

			// Outside-paralog mixture.
			if seti == 0 {
				prgu[ri] = likelihood.LogAddExp(lambda+pout[ri], prgu[ri])
			}
			prgv = likelihood.LogAddExp(lambda+pout[ri], prgv)

			// Heterozygosity mixture: the best of three explicit allele
			// frequencies.
			phet := likelihood.LogAddExp(likelihood.Lg50+prgv, likelihood.Lg50+prgu[ri])
			if p := likelihood.LogAddExp(likelihood.Lg10+prgv, likelihood.Lg90+prgu[ri]); p > phet {
				phet = p
			}
			if p := likelihood.LogAddExp(likelihood.Lg90+prgv, likelihood.Lg10+prgu[ri]); p > phet {
				phet = p
			}

			if prgv > prgu[ri] && prgv-prgu[ri] > unambiguousDiff {
				altCount[seti]++
			} else if prgu[ri] > prgv && prgu[ri]-prgv > unambiguousDiff {
				refCount[seti]++
			}

			if seti == 0 {
				ref += prgu[ri] + refPrior
			}
			alt[seti] += prgv + altPrior
			het[seti] += phet + hetPrior

			if opts.Verbose {
				fmt.Fprintf(os.Stderr, "%d\t++\t%f\t%f\t%f\t%f\t%d\t%s\t", seti, prgu[ri], phet, prgv, pout[ri], altCount[seti], r.Name)
				writeComboList(os.Stderr, combo)
			}
		}
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "%d\t==\t%f\t%f\t%f\t%d\t", seti, ref, het[seti], alt[seti], altCount[seti])
			writeComboList(os.Stderr, combo)
		}
	}

	// The last iteration wins; this reproduces the upstream marginalization.
	total := ref
	maxRefCount, maxAltCount := 0, 0
	for seti := range varCombos {
		total = likelihood.LogAddExp(ref, likelihood.LogAddExp(alt[seti], het[seti]))
		if refCount[seti] > maxRefCount {
			maxRefCount = refCount[seti]
		}
		if altCount[seti] > maxAltCount {
			maxAltCount = altCount[seti]
		}
	}
	readCount := maxRefCount + maxAltCount

	if opts.MVH {
		best := 0
		bestProb := math.Inf(-1)
		for seti := range varCombos {
			if p := likelihood.LogAddExp(alt[seti], het[seti]); p > bestProb {
				bestProb = p
				best = seti
			}
		}
		var b strings.Builder
		for _, v := range varCombos[best] {
			hasAlt, notAlt, hasAltCount := marginalize(v, varCombos, alt, het, altCount, ref)
			appendRow(&b, v, readCount, hasAltCount, total, hasAlt, notAlt, varCombos[best])
		}
		return b.String(), nil
	}

	var b strings.Builder
	for _, v := range set {
		hasAlt, notAlt, hasAltCount := marginalize(v, varCombos, alt, het, altCount, ref)
		appendRow(&b, v, readCount, hasAltCount, total, hasAlt, notAlt, set)
	}
	return b.String(), nil
}

// marginalize splits the combination posteriors into the mass of combinations
// containing v and the mass of those not containing it.  hasAlt starts at 0
// and is replaced, not log-added, by the first eligible combination.
func marginalize(v *variants.Variant, varCombos [][]*variants.Variant, alt, het []float64, altCount []int, ref float64) (hasAlt, notAlt float64, hasAltCount int) {
	notAlt = ref
	for seti, combo := range varCombos {
		if inCombo(combo, v) {
			p := likelihood.LogAddExp(alt[seti], het[seti])
			if hasAlt == 0 {
				hasAlt = p
			} else {
				hasAlt = likelihood.LogAddExp(hasAlt, p)
			}
			if altCount[seti] > hasAltCount {
				hasAltCount = altCount[seti]
			}
		} else {
			notAlt = likelihood.LogAddExp(notAlt, likelihood.LogAddExp(alt[seti], het[seti]))
		}
	}
	return hasAlt, notAlt, hasAltCount
}

func inCombo(combo []*variants.Variant, v *variants.Variant) bool {
	for _, c := range combo {
		if c.Equal(v) {
			return true
		}
	}
	return false
}

// appendRow formats one output row: variant columns, counts, base-10 log
// posterior and odds, and the set field listing the member variants when the
// set has more than one.
func appendRow(b *strings.Builder, v *variants.Variant, readCount, hasAltCount int, total, hasAlt, notAlt float64, members []*variants.Variant) {
	prob := (hasAlt - total) / math.Ln10
	odds := (hasAlt - notAlt) / math.Ln10
	fmt.Fprintf(b, "%s\t%d\t%s\t%s\t%d\t%d\t%e\t%f\t[", v.Chr, v.Pos, v.Ref, v.Alt, readCount, hasAltCount, prob, odds)
	if len(members) > 1 {
		for _, m := range members {
			fmt.Fprintf(b, "%d,%s,%s;", m.Pos, m.Ref, m.Alt)
		}
	}
	b.WriteString("]\n")
}

func writeComboList(w *os.File, combo []*variants.Variant) {
	for _, v := range combo {
		fmt.Fprintf(w, "%s,%d,%s,%s;", v.Chr, v.Pos, v.Ref, v.Alt)
	}
	fmt.Fprintln(w)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
