package likelihood

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// alpha discounts the outside-paralog probability for reads whose stored
// length exceeds the query length inferred from their CIGAR.
const alpha = 1.3

var (
	lgAlpha = math.Log(alpha)
	// Score accumulation stops once it falls this far below the running
	// baseline (natural-log units: a relative contribution of e^-10, ~0.005%).
	scoreCutoff = 10.0
)

// ProbMatrix is the quality-derived position-by-base score matrix for a
// single read.  Row i holds IsMatch[i] in the column of the read's base at i
// and NoMatch[i] everywhere else.
type ProbMatrix struct {
	Len     int
	IsMatch []float64 // ln(1 - err[i])
	NoMatch []float64 // ln(err[i] / 3)
	mat     []float64 // Len x NNt, row-major
}

// NewProbMatrix builds the score matrix for a read with uppercase bases seq
// and per-base log10 error rates qual (non-positive; an exact 0 is replaced
// by -0.01 before use).
func NewProbMatrix(seq []byte, qual []float64) *ProbMatrix {
	m := &ProbMatrix{
		Len:     len(seq),
		IsMatch: make([]float64, len(seq)),
		NoMatch: make([]float64, len(seq)),
	}
	for i, q := range qual {
		if q == 0 {
			q = -0.01
		}
		a := q * math.Ln10
		m.IsMatch[i] = math.Log(1 - math.Exp(a))
		m.NoMatch[i] = a - Lg3
	}
	m.mat = fillMatrix(seq, m.IsMatch, m.NoMatch)
	return m
}

func fillMatrix(seq []byte, isMatch, noMatch []float64) []float64 {
	mat := make([]float64, len(seq)*NNt)
	for b := range seq {
		for i := 0; i < NNt; i++ {
			mat[NNt*b+i] = noMatch[b]
		}
		mat[NNt*b+BaseToEnum(seq[b])] = isMatch[b]
	}
	return mat
}

// ReverseComplemented returns the matrix for the reverse-complemented read:
// the base sequence is reverse complemented and the per-base match terms are
// reversed.  seq must be the read sequence m was built from.
func (m *ProbMatrix) ReverseComplemented(seq []byte) *ProbMatrix {
	r := &ProbMatrix{
		Len:     m.Len,
		IsMatch: reverse(m.IsMatch),
		NoMatch: reverse(m.NoMatch),
	}
	r.mat = fillMatrix(ReverseComplement(seq), r.IsMatch, r.NoMatch)
	return r
}

func reverse(a []float64) []float64 {
	b := make([]float64, len(a))
	for i, j := 0, len(a)-1; j >= 0; i, j = i+1, j-1 {
		b[i] = a[j]
	}
	return b
}

// Score returns the log-probability of the read aligned to seq starting at
// pos (0-based; may be negative).  Out-of-range positions contribute nothing.
// Accumulation stops early once the total falls below baseline - 10.
func (m *ProbMatrix) Score(seq []byte, pos int, baseline float64) float64 {
	prob := 0.0
	for b := pos; b < pos+m.Len; b++ {
		if b < 0 {
			continue
		}
		if b >= len(seq) {
			break
		}
		prob += m.mat[NNt*(b-pos)+BaseToEnum(seq[b])]
		if prob < baseline-scoreCutoff {
			break
		}
	}
	return prob
}

// ScoreWindowed returns the log of the total probability mass of the read
// over candidate start positions in [pos-Len, pos+Len), using the score at
// pos as the initial baseline.
func (m *ProbMatrix) ScoreWindowed(seq []byte, pos int) float64 {
	baseline := m.Score(seq, pos, -1000)
	prob := 0.0
	for i := pos - m.Len; i < pos+m.Len; i++ {
		if i+m.Len < 0 {
			continue
		}
		if i >= len(seq) {
			break
		}
		p := m.Score(seq, i, baseline)
		if prob == 0 {
			prob = p
		} else {
			prob = LogAddExp(prob, p)
		}
		if prob > baseline {
			baseline = prob
		}
	}
	return prob
}

// Elsewhere approximates the log-probability that the read originated from an
// unobserved paralogous locus.  The distribution bulk is covered by the
// perfect-match term and the hamming-distance-1 terms; reads longer than
// their CIGAR-inferred query length are penalized by alpha per extra base.
func (m *ProbMatrix) Elsewhere(inferredLength int) float64 {
	a := floats.Sum(m.IsMatch)
	delta := make([]float64, m.Len)
	for i := range delta {
		delta[i] = m.NoMatch[i] - m.IsMatch[i]
	}
	return LogAddExp(a, a+floats.LogSumExp(delta)) - lgAlpha*float64(m.Len-inferredLength)
}
