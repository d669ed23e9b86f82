package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// MaxTextLength is the maximum allowed search text length, after trimming.
const MaxTextLength = 200

// anyValue is the catch-all category/pricing sent by the directory UI.
const anyValue = "all"

// Query is a validated search request: free text plus coarse filters.
// Only the text takes part in fuzzy scoring.
type Query struct {
	text     string
	category string
	pricing  string
	sortBy   sortmode.Mode
	featured bool
}

// New normalizes and validates search parameters.
// Text is trimmed and may be empty (listing mode). Category and pricing of
// "all" mean no filter. An empty sort mode defaults to relevance; unknown
// modes are kept and leave the order untouched.
func New(text, category, pricing string, sortBy sortmode.Mode, featured bool) (Query, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxTextLength)
	}
	if sortBy == "" {
		sortBy = sortmode.Relevance
	}
	return Query{
		text:     text,
		category: normalizeFilter(category),
		pricing:  normalizeFilter(pricing),
		sortBy:   sortBy,
		featured: featured,
	}, nil
}

// Text returns the trimmed search text.
func (q *Query) Text() string { return q.text }

// HasText reports whether the query ranks by relevance.
func (q *Query) HasText() bool { return q.text != "" }

// Category returns the category filter ("" for any).
func (q *Query) Category() string { return q.category }

// Pricing returns the pricing tier filter ("" for any).
func (q *Query) Pricing() string { return q.pricing }

// SortBy returns the listing order.
func (q *Query) SortBy() sortmode.Mode { return q.sortBy }

// Featured reports whether only featured tools are requested.
func (q *Query) Featured() bool { return q.featured }

// Filter returns the coarse filter for the candidate source.
func (q *Query) Filter() tool.Filter {
	return tool.Filter{Category: q.category, Pricing: q.pricing, FeaturedOnly: q.featured}
}

// CacheKey returns a canonical encoding of the query: JSON with sorted keys.
// Logically equal queries always produce equal keys.
func (q *Query) CacheKey() string {
	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(map[string]any{
		"query":    strings.ToLower(q.text),
		"category": strings.ToLower(q.category),
		"pricing":  strings.ToLower(q.pricing),
		"sortBy":   string(q.sortBy),
		"featured": q.featured,
	})
	if err != nil {
		// unreachable: all values are strings and bools
		return fmt.Sprintf("%q|%q|%q|%q|%t", q.text, q.category, q.pricing, q.sortBy, q.featured)
	}
	return string(data)
}

func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, anyValue) {
		return ""
	}
	return v
}
