package fuzzy

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		target    string
		threshold float64
		want      bool
	}{
		{"substring", "jasper", "Jasper AI", 0.5, true},
		{"substring ignores case", "AI", "jasper ai", 0.99, true},
		{"token prefix", "mid", "Midjourney v6", 0.99, true},
		{"token similarity", "jaspr", "Jasper AI", 0.5, true},
		{"token similarity below threshold", "jaspr", "Jasper AI", 0.9, false},
		{"whole string similarity", "copyai", "copy ai", 0.8, true},
		{"whole string below threshold", "copyai", "copy ai", 0.9, false},
		{"no overlap", "zzz", "Jasper AI", 0.5, false},
		{"empty target", "writ", "", 0.7, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.query, tc.target, tc.threshold); got != tc.want {
				t.Errorf("Match(%q, %q, %.2f) = %v, want %v", tc.query, tc.target, tc.threshold, got, tc.want)
			}
		})
	}
}
