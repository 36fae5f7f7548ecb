// Package match implements the item-matching heuristic: a word-overlap
// similarity score and a weighted composite ranking of candidate posts.
package match

import "strings"

// Similarity returns the percentage of words in a that also occur in b,
// where "occur" means one word contains the other as a substring after
// lowercasing. The denominator is the longer word list, so the result is
// not symmetric in general; callers must keep a fixed (subject, candidate)
// argument order so scores stay reproducible.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	matched := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				matched++
				break
			}
		}
	}

	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	return float64(matched) / float64(longest) * 100
}
