package fuzzy

import (
	"sort"
	"strings"
)

// DefaultMinScore is the relevance cut-off used when callers have no opinion.
const DefaultMinScore = 0.1

// Fields is the searchable view of a record.
// Tagline is optional: nil means the record has none.
type Fields struct {
	Name        string
	Tagline     *string
	Description string
	Features    []string
	Tags        []string
	Category    string
}

// Searchable is implemented by anything the engine can rank.
type Searchable interface {
	SearchFields() Fields
}

// fieldRule describes how one field contributes to the total score.
type fieldRule struct {
	threshold float64
	weight    float64
	scale     float64
}

// Per-field matcher thresholds, weights and scaling.
var (
	nameRule        = fieldRule{threshold: 0.5, weight: 5, scale: 1}
	taglineRule     = fieldRule{threshold: 0.6, weight: 3, scale: 1}
	descriptionRule = fieldRule{threshold: 0.7, weight: 2, scale: 0.8}
	featuresRule    = fieldRule{threshold: 0.7, weight: 1.5, scale: 0.7}
	tagsRule        = fieldRule{threshold: 0.6, weight: 1, scale: 0.8}
)

// MaxScore is what a record scores when every field equals the query.
var MaxScore = nameRule.weight*nameRule.scale +
	taglineRule.weight*taglineRule.scale +
	descriptionRule.weight*descriptionRule.scale +
	featuresRule.weight*featuresRule.scale +
	tagsRule.weight*tagsRule.scale

// Score computes the weighted relevance of f for query. The result is >= 0;
// only the relative order between records is meaningful.
func Score(f Fields, query string) float64 {
	q := strings.ToLower(query)

	score := scalarScore(q, f.Name, nameRule) * nameRule.weight
	if f.Tagline != nil {
		score += scalarScore(q, *f.Tagline, taglineRule) * taglineRule.weight
	}
	score += scalarScore(q, f.Description, descriptionRule) * descriptionRule.weight
	score += collectionScore(q, f.Features, featuresRule) * featuresRule.weight
	score += collectionScore(q, f.Tags, tagsRule) * tagsRule.weight

	return score
}

func scalarScore(q, value string, rule fieldRule) float64 {
	if !Match(q, value, rule.threshold) {
		return 0
	}
	return Similarity(q, strings.ToLower(value)) * rule.scale
}

func collectionScore(q string, values []string, rule fieldRule) float64 {
	if len(values) == 0 {
		return 0
	}
	matching := 0
	for _, v := range values {
		if Match(q, v, rule.threshold) {
			matching++
		}
	}
	if matching == 0 {
		return 0
	}
	return float64(matching) / float64(len(values)) * rule.scale
}

// SearchAndRank scores every record against query, drops those scoring
// at or below minScore and returns the rest best-first. Equal scores keep
// their input order.
//
// A blank query is a no-op: records is returned as-is.
func SearchAndRank[T Searchable](records []T, query string, minScore float64) []T {
	q := strings.TrimSpace(query)
	if q == "" {
		return records
	}

	type scored struct {
		rec   T
		score float64
	}

	hits := make([]scored, 0, len(records))
	for _, r := range records {
		s := Score(r.SearchFields(), q)
		if s > minScore {
			hits = append(hits, scored{rec: r, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}
