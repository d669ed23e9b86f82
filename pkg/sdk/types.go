package toolforge

import (
	"time"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// SortMode orders results. Text queries are ranked by relevance first.
type SortMode string

// Sort mode constants.
const (
	SortRelevance SortMode = SortMode(sortmode.Relevance)
	SortRating    SortMode = SortMode(sortmode.Rating)
	SortPopular   SortMode = SortMode(sortmode.Popular)
	SortName      SortMode = SortMode(sortmode.Name)
	SortNewest    SortMode = SortMode(sortmode.Newest)
	SortPriceLow  SortMode = SortMode(sortmode.PriceLow)
	SortPriceHigh SortMode = SortMode(sortmode.PriceHigh)
)

// Tool is a directory entry.
type Tool struct {
	ID          string
	Name        string
	Tagline     *string
	Description string
	Features    []string
	Tags        []string
	Category    string
	Pricing     string
	Price       string // free text, e.g. "$29/mo"
	Rating      float64
	Views       int64
	Featured    bool
	CreatedAt   time.Time
}

// Query is a search request. Empty Category or Pricing (or "all") means no filter.
type Query struct {
	Text         string
	Category     string
	Pricing      string
	SortBy       SortMode
	FeaturedOnly bool
}

// SearchResult is the ordered result list of a query.
type SearchResult struct {
	Tools  []Tool
	Cached bool
}

func toDomainTool(t Tool) (domtool.Tool, error) {
	return domtool.New(domtool.Attrs{
		ID:          t.ID,
		Name:        t.Name,
		Tagline:     t.Tagline,
		Description: t.Description,
		Features:    t.Features,
		Tags:        t.Tags,
		Category:    t.Category,
		Pricing:     t.Pricing,
		Price:       t.Price,
		Rating:      t.Rating,
		Views:       t.Views,
		Featured:    t.Featured,
		CreatedAt:   t.CreatedAt,
	})
}

func toDomainTools(tools []Tool) ([]domtool.Tool, error) {
	out := make([]domtool.Tool, 0, len(tools))
	for _, t := range tools {
		dt, err := toDomainTool(t)
		if err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, nil
}

func fromDomainTool(t domtool.Tool) Tool {
	a := t.Attrs()
	out := Tool{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Features:    append([]string(nil), a.Features...),
		Tags:        append([]string(nil), a.Tags...),
		Category:    a.Category,
		Pricing:     a.Pricing,
		Price:       a.Price,
		Rating:      a.Rating,
		Views:       a.Views,
		Featured:    a.Featured,
		CreatedAt:   a.CreatedAt,
	}
	if tl, ok := t.Tagline(); ok {
		out.Tagline = &tl
	}
	return out
}
