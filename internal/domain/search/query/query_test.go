package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("  jasper  ", "", "", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "jasper" {
		t.Errorf("Text() = %q", q.Text())
	}
	if !q.HasText() {
		t.Error("HasText() = false")
	}
	if q.SortBy() != sortmode.Relevance {
		t.Errorf("SortBy() = %q, want relevance (default)", q.SortBy())
	}
	if !q.Filter().IsEmpty() {
		t.Errorf("Filter() = %+v, want empty", q.Filter())
	}
}

func TestNew_AllMeansNoFilter(t *testing.T) {
	q, err := New("", "All", " all ", sortmode.Rating, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Category() != "" || q.Pricing() != "" {
		t.Errorf("Category/Pricing = %q/%q, want empty", q.Category(), q.Pricing())
	}
	if q.HasText() {
		t.Error("HasText() = true for blank text")
	}
	f := q.Filter()
	if !f.FeaturedOnly {
		t.Error("Filter().FeaturedOnly = false")
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxTextLength+1), "", "", "", false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_AtMaxLength(t *testing.T) {
	if _, err := New(strings.Repeat("é", MaxTextLength), "", "", "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_UnknownSortKept(t *testing.T) {
	q, err := New("", "", "", "cheapest", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SortBy() != "cheapest" {
		t.Errorf("SortBy() = %q", q.SortBy())
	}
}

func TestCacheKey_Canonical(t *testing.T) {
	a, _ := New("Jasper ", "Writing", "paid", "", false)
	b, _ := New(" jasper", "writing", "PAID", sortmode.Relevance, false)
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equal queries produced different keys:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}

	want := `{"category":"writing","featured":false,"pricing":"paid","query":"jasper","sortBy":"relevance"}`
	if a.CacheKey() != want {
		t.Errorf("CacheKey() = %s, want %s", a.CacheKey(), want)
	}
}

func TestCacheKey_Distinct(t *testing.T) {
	base, _ := New("jasper", "", "", "", false)
	variants := []func() (Query, error){
		func() (Query, error) { return New("jasp", "", "", "", false) },
		func() (Query, error) { return New("jasper", "writing", "", "", false) },
		func() (Query, error) { return New("jasper", "", "free", "", false) },
		func() (Query, error) { return New("jasper", "", "", sortmode.Rating, false) },
		func() (Query, error) { return New("jasper", "", "", "", true) },
	}
	for i, mk := range variants {
		v, err := mk()
		if err != nil {
			t.Fatalf("variant %d: %v", i, err)
		}
		if v.CacheKey() == base.CacheKey() {
			t.Errorf("variant %d shares key with base: %s", i, v.CacheKey())
		}
	}
}
