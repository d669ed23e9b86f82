package fuzzy

import "strings"

// Match reports whether query sufficiently resembles target.
// Checks run cheapest first and stop at the first hit:
//  1. target contains query (case-insensitive)
//  2. a whitespace-delimited token of target starts with query
//  3. a token is at least threshold-similar to query
//  4. the whole target is at least threshold-similar to query
func Match(query, target string, threshold float64) bool {
	q := strings.ToLower(query)
	t := strings.ToLower(target)

	if strings.Contains(t, q) {
		return true
	}

	tokens := strings.Fields(t)
	for _, tok := range tokens {
		if strings.HasPrefix(tok, q) {
			return true
		}
	}
	for _, tok := range tokens {
		if Similarity(q, tok) >= threshold {
			return true
		}
	}

	return Similarity(q, t) >= threshold
}
