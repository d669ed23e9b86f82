// Package fuzzy implements the lexical search engine: edit-distance
// similarity, a boolean fuzzy matcher, weighted multi-field relevance scoring
// and autocomplete suggestions. All functions are pure and safe for
// concurrent use.
package fuzzy

import "unicode"

// EditDistance returns the Levenshtein distance between a and b.
// Characters are compared case-insensitively, one rune at a time.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// Full (len(a)+1) x (len(b)+1) matrix.
	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if unicode.ToLower(ra[i-1]) == unicode.ToLower(rb[j-1]) {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[len(ra)][len(rb)]
}

// Similarity returns 1 - EditDistance(a, b)/max(len(a), len(b)), in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(runeLen(a), runeLen(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(EditDistance(a, b))/float64(longest)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
