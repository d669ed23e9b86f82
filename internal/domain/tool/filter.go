package tool

// Filter narrows the candidate set before fuzzy scoring.
// Zero values mean "no constraint".
type Filter struct {
	Category     string
	Pricing      string
	FeaturedOnly bool
}

// IsEmpty reports whether the filter matches every tool.
func (f Filter) IsEmpty() bool {
	return f.Category == "" && f.Pricing == "" && !f.FeaturedOnly
}

// Apply returns the tools matching f, preserving order.
// An empty filter returns tools unchanged.
func (f Filter) Apply(tools []Tool) []Tool {
	if f.IsEmpty() {
		return tools
	}
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		if t.Matches(f) {
			out = append(out, t)
		}
	}
	return out
}
