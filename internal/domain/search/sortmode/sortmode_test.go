package sortmode

import (
	"testing"
	"time"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

func mk(id, name, price string, rating float64, views int64, day int) tool.Tool {
	return tool.Reconstruct(tool.Attrs{
		ID: id, Name: name, Price: price, Rating: rating, Views: views,
		CreatedAt: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
	})
}

func fixtures() []tool.Tool {
	return []tool.Tool{
		mk("a", "midjourney", "$10/mo", 4.0, 500, 3),
		mk("b", "Canva", "Free", 4.8, 9000, 1),
		mk("c", "ChatGPT", "$20", 4.8, 20000, 5),
		mk("d", "Jasper", "$39.99 per month", 3.9, 100, 2),
	}
}

func order(tools []tool.Tool) string {
	s := ""
	for _, t := range tools {
		s += t.ID()
	}
	return s
}

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Relevance, Rating, Popular, Name, Newest, PriceLow, PriceHigh} {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}
	for _, m := range []Mode{"", "RATING", "cheapest"} {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Rating, "bcad"}, // ties keep input order
		{Popular, "cbad"},
		{Name, "bcda"},
		{Newest, "cadb"},
		{PriceLow, "bacd"},
		{PriceHigh, "dcab"},
		{Relevance, "abcd"},
		{"unknown", "abcd"},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			in := fixtures()
			got := Apply(in, tc.mode)
			if order(got) != tc.want {
				t.Errorf("Apply(%q) = %s, want %s", tc.mode, order(got), tc.want)
			}
			if order(in) != "abcd" {
				t.Errorf("input slice was reordered: %s", order(in))
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$29.99/mo", 29.99},
		{"Free", 0},
		{"", 0},
		{"$1,200 / year", 1200},
		{"from $5", 5},
		{"v1.2.3", 1.2},
		{"Starts at $9.", 9},
		{"...", 0},
	}
	for _, tc := range tests {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
