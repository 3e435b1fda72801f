package likelihood

import "math"

// DPParams are the integer alignment scores for the dynamic-programming
// likelihood mode.  Scores are phred-like and converted to natural-log units
// by *ln(10)/10.
type DPParams struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// DefaultDPParams matches the classic aligner defaults.
var DefaultDPParams = DPParams{Match: 1, Mismatch: 4, GapOpen: 6, GapExtend: 1}

func phredToLn(v int) float64 { return float64(v) * math.Ln10 / 10 }

// NewScoreMatrix builds a constant score matrix for a read without base
// qualities: every base scores -Match/10 decades when it matches and
// -Mismatch/10 decades when it does not.
func NewScoreMatrix(seq []byte, p DPParams) *ProbMatrix {
	m := &ProbMatrix{
		Len:     len(seq),
		IsMatch: make([]float64, len(seq)),
		NoMatch: make([]float64, len(seq)),
	}
	for i := range seq {
		m.IsMatch[i] = -phredToLn(p.Match)
		m.NoMatch[i] = -phredToLn(p.Mismatch)
	}
	m.mat = fillMatrix(seq, m.IsMatch, m.NoMatch)
	return m
}

// ScoreDP returns the read log-probability against seq by banded affine-gap
// alignment instead of the positional sum of ScoreWindowed.  Every read base
// is consumed; the alignment may start and end anywhere in the window
// [pos-Len, pos+2*Len).  Gaps pay GapOpen to open and GapExtend to extend,
// in either the read or the sequence.
func (m *ProbMatrix) ScoreDP(seq []byte, pos int, p DPParams) float64 {
	lo := pos - m.Len
	if lo < 0 {
		lo = 0
	}
	hi := pos + 2*m.Len
	if hi > len(seq) {
		hi = len(seq)
	}
	w := hi - lo
	if w <= 0 {
		return m.Score(seq, pos, -1000)
	}
	gapOpen := -phredToLn(p.GapOpen)
	gapExtend := -phredToLn(p.GapExtend)

	// Two-row recurrence: h is the best score ending at (read base i, window
	// column j); e gaps the sequence, f gaps the read.
	h := make([]float64, w+1)
	e := make([]float64, w+1)
	hPrev := make([]float64, w+1)
	ePrev := make([]float64, w+1)
	f := make([]float64, w+1)
	for j := 0; j <= w; j++ {
		hPrev[j] = 0 // free leading sequence
		ePrev[j] = math.Inf(-1)
	}
	for i := 1; i <= m.Len; i++ {
		h[0] = gapOpen + float64(i-1)*gapExtend
		e[0] = math.Inf(-1)
		f[0] = h[0]
		for j := 1; j <= w; j++ {
			diag := hPrev[j-1] + m.mat[NNt*(i-1)+BaseToEnum(seq[lo+j-1])]
			e[j] = math.Max(hPrev[j]+gapOpen, ePrev[j]+gapExtend)
			f[j] = math.Max(h[j-1]+gapOpen, f[j-1]+gapExtend)
			h[j] = math.Max(diag, math.Max(e[j], f[j]))
		}
		h, hPrev = hPrev, h
		e, ePrev = ePrev, e
	}
	best := math.Inf(-1)
	for j := 0; j <= w; j++ {
		if hPrev[j] > best {
			best = hPrev[j]
		}
	}
	return best
}
