// Package variants holds candidate variants, VCF loading, and the grouping of
// nearby variants into jointly-evaluated hypothesis sets.
package variants

import (
	"sort"
	"strings"

	"github.com/dc-tw/eagle/util"
)

// Variant is a candidate edit: chromosome, 1-based position, reference
// allele, and alternative allele.  A "-" allele denotes an empty allele (pure
// insertion or deletion).  Variants are immutable after construction.
type Variant struct {
	Chr string
	Pos int
	Ref string
	Alt string
}

// Compare orders variants by (chr, pos): chromosome names compare naturally,
// positions numerically.
func Compare(a, b *Variant) int {
	if strings.EqualFold(a.Chr, b.Chr) {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		}
		return 0
	}
	return util.NaturalCompare(a.Chr, b.Chr)
}

// Sort sorts the variant store into its natural order.
func Sort(vars []*Variant) {
	sort.SliceStable(vars, func(i, j int) bool { return Compare(vars[i], vars[j]) < 0 })
}

// Equal reports whether two variants describe the same edit.
func (v *Variant) Equal(o *Variant) bool {
	return v.Pos == o.Pos && v.Chr == o.Chr && v.Ref == o.Ref && v.Alt == o.Alt
}
