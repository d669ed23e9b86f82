package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// bindSearchParams decodes GET /api/tools/search query parameters.
func bindSearchParams(q url.Values) (SearchToolsParams, error) {
	var p SearchToolsParams
	binds := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"category", &p.Category},
		{"pricing", &p.Pricing},
		{"sortBy", &p.SortBy},
		{"featured", &p.Featured},
		{"suggestions", &p.Suggestions},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return SearchToolsParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// bindSuggestParams decodes GET /api/tools/suggestions query parameters.
func bindSuggestParams(q url.Values) (SuggestToolsParams, error) {
	var p SuggestToolsParams
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return SuggestToolsParams{}, fmt.Errorf("invalid format for parameter q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return SuggestToolsParams{}, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return p, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
