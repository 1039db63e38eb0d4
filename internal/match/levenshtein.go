package match

// Levenshtein computes the edit distance between two strings, counted in
// bytes: the minimum number of single-character insertions, deletions and
// substitutions turning a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	// Keep the shorter string in a so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity maps the distance of the normalized names into [0, 1], where
// 1 means equal after normalization.
func Similarity(a, b string) float64 {
	a, b = NormalizeIdent(a), NormalizeIdent(b)
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}
