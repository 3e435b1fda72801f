package variants

// Chain-mode constants for Partition.
const (
	// ChainGap groups consecutive variants whose positional gap is within the
	// distance limit.
	ChainGap = 0
	// ChainAnchor groups variants while they stay within the distance limit of
	// the first variant of the set.
	ChainAnchor = 1
)

// Partition groups the sorted variant store into hypothesis sets.  Variants
// join the current set while they share a chromosome and satisfy the chain
// rule for distLim; distLim 0 disables grouping entirely.  Sets containing
// two entries at the same position are then split into parallel sets, one per
// alternative, so that no set holds two variants at one position.
func Partition(vars []*Variant, distLim, chainMode int) [][]*Variant {
	var sets [][]*Variant
	for i := 0; i < len(vars); {
		curr := []*Variant{vars[i]}
		j := i + 1
		for distLim > 0 && j < len(vars) && vars[j].Chr == vars[j-1].Chr && withinChain(curr, vars[j], distLim, chainMode) {
			curr = append(curr, vars[j])
			j++
		}
		i = j
		sets = append(sets, curr)
	}

	// Heterozygous non-reference alternatives at one position become parallel
	// sets: the original keeps the second entry, the duplicate the first.
	for again := true; again; {
		again = false
		var added [][]*Variant
		for i := range sets {
			if len(sets[i]) == 1 {
				continue
			}
			for j := 0; j+1 < len(sets[i]); j++ {
				if sets[i][j].Pos == sets[i][j+1].Pos {
					again = true
					dup := append([]*Variant(nil), sets[i]...)
					sets[i] = append(sets[i][:j], sets[i][j+1:]...)
					dup = append(dup[:j+1], dup[j+2:]...)
					added = append(added, dup)
				}
			}
		}
		sets = append(sets, added...)
	}
	return sets
}

func withinChain(curr []*Variant, next *Variant, distLim, chainMode int) bool {
	anchor := curr[len(curr)-1]
	if chainMode == ChainAnchor {
		anchor = curr[0]
	}
	gap := next.Pos - anchor.Pos
	if gap < 0 {
		gap = -gap
	}
	return gap <= distLim
}
