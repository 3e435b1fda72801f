package eval

// Combinations enumerates the bounded power set over n variant indices:
// first the n singletons, then the full set, then k-subsets for k = 2..n-1
// in ascending k and lexicographic order within k.  After each completed k,
// enumeration stops once the total exceeds n+1+maxH; the singletons and full
// set are always present regardless of maxH.
func Combinations(n, maxH int) [][]int {
	combos := appendKSubsets(nil, 1, n)
	if n > 1 {
		combos = appendKSubsets(combos, n, n)
		for k := 2; k <= n-1; k++ {
			combos = appendKSubsets(combos, k, n)
			if len(combos)-n-1 > maxH {
				break
			}
		}
	}
	return combos
}

// appendKSubsets appends all k-subsets of {0..n-1} in lexicographic order.
func appendKSubsets(out [][]int, k, n int) [][]int {
	c := make([]int, k)
	for i := range c {
		c[i] = i
	}
	for {
		out = append(out, append([]int(nil), c...))

		i := k - 1
		c[i]++
		for i > 0 && c[i] >= n-k+1+i {
			i--
			c[i]++
		}
		if c[0] > n-k {
			return out
		}
		for i++; i < k; i++ {
			c[i] = c[i-1] + 1
		}
	}
}
