package fuzzy

import "strings"

// MinSuggestionQueryLen is the shortest query that produces suggestions.
const MinSuggestionQueryLen = 2

// Suggest returns up to limit distinct autocomplete strings for query.
// Names are collected first, then tags, then categories; within each pass
// records are visited in input order and the first spelling seen wins.
func Suggest[T Searchable](records []T, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if runeLen(q) < MinSuggestionQueryLen || limit <= 0 {
		return []string{}
	}

	fields := make([]Fields, len(records))
	for i, r := range records {
		fields[i] = r.SearchFields()
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	add := func(s string) bool {
		if s == "" || !strings.Contains(strings.ToLower(s), q) {
			return len(out) < limit
		}
		if _, dup := seen[s]; dup {
			return len(out) < limit
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) < limit
	}

	for _, f := range fields {
		if !add(f.Name) {
			return out
		}
	}
	for _, f := range fields {
		for _, tag := range f.Tags {
			if !add(tag) {
				return out
			}
		}
	}
	for _, f := range fields {
		if !add(f.Category) {
			return out
		}
	}

	return out
}
