package likelihood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScoreMatrix(t *testing.T) {
	m := NewScoreMatrix([]byte("ACGT"), DefaultDPParams)
	assert.Equal(t, 4, m.Len)
	assert.InDelta(t, -phredToLn(1), m.IsMatch[0], 1e-12)
	assert.InDelta(t, -phredToLn(4), m.NoMatch[0], 1e-12)
	assert.True(t, m.IsMatch[0] > m.NoMatch[0])
}

func TestScoreDPPerfectMatch(t *testing.T) {
	ref := []byte("TTACGTTT")
	m := NewProbMatrix([]byte("ACGT"), uniformQual(4, 40))
	// A gap-free perfect alignment exists, so the DP score equals the plain
	// positional score there.
	assert.InDelta(t, m.Score(ref, 2, -1000), m.ScoreDP(ref, 2, DefaultDPParams), 1e-9)
}

func TestScoreDPDeletion(t *testing.T) {
	// The reference lost the G of the read; an affine gap recovers most of
	// the score while the gap-blind positional scan cannot.
	ref := []byte("TTTTACTATTTT")
	read := []byte("ACGTA")
	m := NewProbMatrix(read, uniformQual(5, 40))
	dp := m.ScoreDP(ref, 4, DefaultDPParams)
	flat := m.Score(ref, 4, -1000)
	assert.True(t, dp > flat)
	// Four matching bases minus one opened gap bounds the DP score below the
	// all-match ideal.
	assert.True(t, dp < 5*m.IsMatch[0])
}

func TestScoreDPWindowClamp(t *testing.T) {
	ref := []byte("ACG")
	m := NewProbMatrix([]byte("ACG"), uniformQual(3, 40))
	got := m.ScoreDP(ref, 0, DefaultDPParams)
	assert.InDelta(t, m.Score(ref, 0, -1000), got, 1e-9)
}
