package util_test

import (
	"sort"
	"testing"

	"github.com/dc-tw/eagle/util"
	"github.com/stretchr/testify/assert"
)

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"chr1", "chr1", 0},
		{"chr1", "chr2", -1},
		{"chr2", "chr10", -1},
		{"chr10", "chr2", 1},
		{"Chr1", "chr1", 0},
		{"chr1", "chrX", -1},
		{"chrX", "chrY", -1},
		{"scaffold_9", "scaffold_11", -1},
		{"chr1\t100", "chr1\t20", 1},
		{"a b", "a\tb", 0},
	}
	for _, tt := range tests {
		got := util.NaturalCompare(tt.a, tt.b)
		sign := 0
		if got < 0 {
			sign = -1
		} else if got > 0 {
			sign = 1
		}
		assert.Equal(t, tt.want, sign, "NaturalCompare(%q, %q)", tt.a, tt.b)
	}
}

func TestNaturalSortOrder(t *testing.T) {
	names := []string{"chr10", "chr2", "chrM", "chr1", "chrX"}
	sort.Slice(names, func(i, j int) bool { return util.NaturalCompare(names[i], names[j]) < 0 })
	assert.Equal(t, []string{"chr1", "chr2", "chr10", "chrM", "chrX"}, names)
}
