package tool

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/fuzzy"
)

// Catalog limits.
const (
	MaxNameLength = 200
	MaxRating     = 5
)

// Attrs carries the raw attributes of a tool between layers.
type Attrs struct {
	ID          string
	Name        string
	Tagline     *string
	Description string
	Features    []string
	Tags        []string
	Category    string
	Pricing     string
	Price       string
	Rating      float64
	Views       int64
	Featured    bool
	CreatedAt   time.Time
}

// Tool is a directory entry (immutable value object).
type Tool struct {
	id          string
	name        string
	tagline     *string
	description string
	features    []string
	tags        []string
	category    string
	pricing     string
	price       string
	rating      float64
	views       int64
	featured    bool
	createdAt   time.Time
}

// New validates attrs and creates a Tool.
// ID and name are required; rating must be within 0..5 and views non-negative.
func New(a Attrs) (Tool, error) {
	if strings.TrimSpace(a.ID) == "" {
		return Tool{}, fmt.Errorf("%w: tool ID is required", domain.ErrInvalidRecord)
	}
	if strings.TrimSpace(a.Name) == "" {
		return Tool{}, fmt.Errorf("%w: tool %q: name is required", domain.ErrInvalidRecord, a.ID)
	}
	if len(a.Name) > MaxNameLength {
		return Tool{}, fmt.Errorf("%w: tool %q: name too long (max %d)", domain.ErrInvalidRecord, a.ID, MaxNameLength)
	}
	if a.Rating < 0 || a.Rating > MaxRating {
		return Tool{}, fmt.Errorf("%w: tool %q: rating must be between 0 and %d", domain.ErrInvalidRecord, a.ID, MaxRating)
	}
	if a.Views < 0 {
		return Tool{}, fmt.Errorf("%w: tool %q: views must be non-negative", domain.ErrInvalidRecord, a.ID)
	}

	t := Reconstruct(a)
	t.features = cloneStrings(a.Features)
	t.tags = cloneStrings(a.Tags)
	if a.Tagline != nil {
		tl := *a.Tagline
		t.tagline = &tl
	}
	return t, nil
}

// Reconstruct creates a Tool without validation (storage hydration).
func Reconstruct(a Attrs) Tool {
	return Tool{
		id:          a.ID,
		name:        a.Name,
		tagline:     a.Tagline,
		description: a.Description,
		features:    a.Features,
		tags:        a.Tags,
		category:    a.Category,
		pricing:     a.Pricing,
		price:       a.Price,
		rating:      a.Rating,
		views:       a.Views,
		featured:    a.Featured,
		createdAt:   a.CreatedAt,
	}
}

// ID returns the tool identifier.
func (t Tool) ID() string { return t.id }

// Name returns the display name.
func (t Tool) Name() string { return t.name }

// Tagline returns the short tagline and whether the tool has one.
func (t Tool) Tagline() (string, bool) {
	if t.tagline == nil {
		return "", false
	}
	return *t.tagline, true
}

// Description returns the long description.
func (t Tool) Description() string { return t.description }

// Features returns the feature list.
func (t Tool) Features() []string { return t.features }

// Tags returns the tag list.
func (t Tool) Tags() []string { return t.tags }

// Category returns the directory category.
func (t Tool) Category() string { return t.category }

// Pricing returns the pricing tier (free, freemium, paid...).
func (t Tool) Pricing() string { return t.pricing }

// Price returns the free-text price label, e.g. "$29/mo".
func (t Tool) Price() string { return t.price }

// Rating returns the average rating (0..5).
func (t Tool) Rating() float64 { return t.rating }

// Views returns the page view count.
func (t Tool) Views() int64 { return t.views }

// Featured reports whether the tool is promoted.
func (t Tool) Featured() bool { return t.featured }

// CreatedAt returns when the tool was listed.
func (t Tool) CreatedAt() time.Time { return t.createdAt }

// Attrs returns a copy of the tool's attributes.
func (t Tool) Attrs() Attrs {
	return Attrs{
		ID: t.id, Name: t.name, Tagline: t.tagline, Description: t.description,
		Features: t.features, Tags: t.tags, Category: t.category, Pricing: t.pricing,
		Price: t.price, Rating: t.rating, Views: t.views, Featured: t.featured,
		CreatedAt: t.createdAt,
	}
}

// SearchFields exposes the fields the fuzzy engine scores.
func (t Tool) SearchFields() fuzzy.Fields {
	return fuzzy.Fields{
		Name:        t.name,
		Tagline:     t.tagline,
		Description: t.description,
		Features:    t.features,
		Tags:        t.tags,
		Category:    t.category,
	}
}

// Matches reports whether the tool passes the coarse catalog filter.
func (t Tool) Matches(f Filter) bool {
	if f.Category != "" && !strings.EqualFold(t.category, f.Category) {
		return false
	}
	if f.Pricing != "" && !strings.EqualFold(t.pricing, f.Pricing) {
		return false
	}
	if f.FeaturedOnly && !t.featured {
		return false
	}
	return true
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
