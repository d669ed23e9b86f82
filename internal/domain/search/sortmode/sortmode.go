// Package sortmode orders query-less listings.
package sortmode

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// Mode is the listing order requested by the client.
type Mode string

// Sort mode constants.
const (
	// Relevance keeps the ranking order (or source order without a query).
	Relevance Mode = "relevance"
	Rating    Mode = "rating"
	Popular   Mode = "popular"
	Name      Mode = "name"
	Newest    Mode = "newest"
	PriceLow  Mode = "price-low"
	PriceHigh Mode = "price-high"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case Relevance, Rating, Popular, Name, Newest, PriceLow, PriceHigh:
		return true
	}
	return false
}

// Apply returns tools ordered by m. The input slice is never modified.
// Relevance and unknown modes return tools as-is.
func Apply(tools []tool.Tool, m Mode) []tool.Tool {
	var less func(a, b *tool.Tool) bool

	switch m {
	case Rating:
		less = func(a, b *tool.Tool) bool { return a.Rating() > b.Rating() }
	case Popular:
		less = func(a, b *tool.Tool) bool { return a.Views() > b.Views() }
	case Name:
		less = func(a, b *tool.Tool) bool { return strings.ToLower(a.Name()) < strings.ToLower(b.Name()) }
	case Newest:
		less = func(a, b *tool.Tool) bool { return a.CreatedAt().After(b.CreatedAt()) }
	case PriceLow:
		less = func(a, b *tool.Tool) bool { return ParsePrice(a.Price()) < ParsePrice(b.Price()) }
	case PriceHigh:
		less = func(a, b *tool.Tool) bool { return ParsePrice(a.Price()) > ParsePrice(b.Price()) }
	default:
		return tools
	}

	out := make([]tool.Tool, len(tools))
	copy(out, tools)
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// ParsePrice extracts a number from a free-text price label by dropping
// everything except digits and dots, then reading the longest numeric
// prefix. "$29.99/mo" is 29.99; "Free" and "" are 0.
func ParsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	end, dot := 0, false
	for end < len(digits) {
		if digits[end] == '.' {
			if dot {
				break
			}
			dot = true
		}
		end++
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(digits[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}
