package likelihood

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformQual returns n per-base log10 error rates at the given phred score.
func uniformQual(n int, phred float64) []float64 {
	q := make([]float64, n)
	for i := range q {
		q[i] = phred / -10
	}
	return q
}

func TestNewProbMatrix(t *testing.T) {
	seq := []byte("ACGT")
	m := NewProbMatrix(seq, uniformQual(4, 40))
	require.Equal(t, 4, m.Len)

	lnErr := -4 * math.Ln10
	isMatch := math.Log(1 - math.Exp(lnErr))
	noMatch := lnErr - Lg3
	for i := range seq {
		assert.InDelta(t, isMatch, m.IsMatch[i], 1e-12)
		assert.InDelta(t, noMatch, m.NoMatch[i], 1e-12)
	}
	// The matching base carries the match term, all others the mismatch term.
	assert.InDelta(t, isMatch, m.mat[0*NNt+NtA], 1e-12)
	assert.InDelta(t, noMatch, m.mat[0*NNt+NtT], 1e-12)
	assert.InDelta(t, isMatch, m.mat[1*NNt+NtC], 1e-12)
	assert.InDelta(t, isMatch, m.mat[3*NNt+NtT], 1e-12)
}

func TestNewProbMatrixZeroQual(t *testing.T) {
	// A stored 0 is replaced by -0.01 so the log terms stay finite.
	m := NewProbMatrix([]byte("A"), []float64{0})
	a := -0.01 * math.Ln10
	assert.InDelta(t, math.Log(1-math.Exp(a)), m.IsMatch[0], 1e-12)
	assert.InDelta(t, a-Lg3, m.NoMatch[0], 1e-12)
}

func TestScore(t *testing.T) {
	ref := []byte("ACGTACGT")
	m := NewProbMatrix([]byte("ACGT"), uniformQual(4, 40))

	perfect := m.Score(ref, 0, -1000)
	assert.InDelta(t, 4*m.IsMatch[0], perfect, 1e-9)

	oneMismatch := m.Score(ref, 1, -1000)
	assert.InDelta(t, 4*m.NoMatch[0], oneMismatch, 1e-9)
	assert.True(t, perfect > oneMismatch)

	// Out-of-range positions are skipped, not scored: only the in-range
	// suffix (G, T against A, C) and prefix (A, C against G, T) contribute.
	hanging := m.Score(ref, -2, -1000)
	assert.InDelta(t, 2*m.NoMatch[0], hanging, 1e-9)
	tail := m.Score(ref, 6, -1000)
	assert.InDelta(t, 2*m.NoMatch[0], tail, 1e-9)
}

func TestScoreEarlyTermination(t *testing.T) {
	ref := []byte("TTTTTTTTTTTTTTTT")
	m := NewProbMatrix([]byte("AAAAAAAAAAAAAAAA"), uniformQual(16, 40))
	got := m.Score(ref, 0, 0)
	// Accumulation stops once the score falls more than 10 below the
	// baseline; an all-mismatch read never reaches the full sum.
	assert.True(t, got > 16*m.NoMatch[0])
	assert.True(t, got < -10)
}

func TestScoreWindowed(t *testing.T) {
	ref := []byte("ACGTACGTACGTACGT")
	m := NewProbMatrix([]byte("ACGTACGT"), uniformQual(8, 40))

	atZero := m.ScoreWindowed(ref, 0)
	// The windowed mass includes the perfect alignment plus its neighbors, so
	// it exceeds the single-position score.
	assert.True(t, atZero > m.Score(ref, 0, -1000))

	// The matching read's windowed mass dominates that of a read that matches
	// nowhere.
	garbage := NewProbMatrix([]byte("GGGGGGGG"), uniformQual(8, 40))
	assert.True(t, atZero > garbage.ScoreWindowed(ref, 0))
}

func TestElsewhere(t *testing.T) {
	m := NewProbMatrix([]byte("ACGT"), uniformQual(4, 40))
	a := 4 * m.IsMatch[0]
	delta := m.NoMatch[0] - m.IsMatch[0]
	want := LogAddExp(a, a+delta+math.Log(4))
	assert.InDelta(t, want, m.Elsewhere(4), 1e-9)

	// Reads longer than their CIGAR-inferred length are penalized.
	assert.True(t, m.Elsewhere(3) < m.Elsewhere(4))
	assert.InDelta(t, m.Elsewhere(4)-math.Log(1.3), m.Elsewhere(3), 1e-9)
}

func TestReverseComplemented(t *testing.T) {
	seq := []byte("AACG")
	qual := []float64{-4, -4, -3, -2}
	m := NewProbMatrix(seq, qual)
	r := m.ReverseComplemented(seq)

	require.Equal(t, m.Len, r.Len)
	for i := 0; i < m.Len; i++ {
		assert.Equal(t, m.IsMatch[m.Len-1-i], r.IsMatch[i])
		assert.Equal(t, m.NoMatch[m.Len-1-i], r.NoMatch[i])
	}
	// The reverse complement of AACG is CGTT; the match column moves with it.
	assert.Equal(t, r.IsMatch[0], r.mat[0*NNt+NtC])
	assert.Equal(t, r.IsMatch[3], r.mat[3*NNt+NtT])

	// Scoring the reverse complement against the reverse-complemented
	// reference reproduces the forward score.
	ref := []byte("TTAACGTT")
	fwd := m.Score(ref, 2, -1000)
	rev := r.Score(ReverseComplement(ref), 2, -1000)
	assert.InDelta(t, fwd, rev, 1e-9)
}
