package tool

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// Hash field names.
const (
	fieldName        = "name"
	fieldTagline     = "tagline"
	fieldDescription = "description"
	fieldFeatures    = "features"
	fieldTags        = "tags"
	fieldCategory    = "category"
	fieldPricing     = "pricing"
	fieldPrice       = "price"
	fieldRating      = "rating"
	fieldViews       = "views"
	fieldFeatured    = "featured"
	fieldCreatedAt   = "created_at"
)

// buildHashFields converts a Tool into a flat map[string]string for HSET.
// List fields are JSON arrays; a missing tagline is omitted.
func buildHashFields(t domtool.Tool) (map[string]string, error) {
	features, err := json.Marshal(nonNil(t.Features()))
	if err != nil {
		return nil, fmt.Errorf("marshal features of %s: %w", t.ID(), err)
	}
	tags, err := json.Marshal(nonNil(t.Tags()))
	if err != nil {
		return nil, fmt.Errorf("marshal tags of %s: %w", t.ID(), err)
	}

	m := map[string]string{
		fieldName:        t.Name(),
		fieldDescription: t.Description(),
		fieldFeatures:    string(features),
		fieldTags:        string(tags),
		fieldCategory:    t.Category(),
		fieldPricing:     t.Pricing(),
		fieldPrice:       t.Price(),
		fieldRating:      strconv.FormatFloat(t.Rating(), 'f', -1, 64),
		fieldViews:       strconv.FormatInt(t.Views(), 10),
		fieldFeatured:    strconv.FormatBool(t.Featured()),
	}
	if tagline, ok := t.Tagline(); ok {
		m[fieldTagline] = tagline
	}
	if !t.CreatedAt().IsZero() {
		m[fieldCreatedAt] = t.CreatedAt().UTC().Format(time.RFC3339)
	}
	return m, nil
}

// parseHashFields converts a flat hash back into a Tool.
// Malformed numeric or list fields fall back to zero values.
func parseHashFields(id string, m map[string]string) domtool.Tool {
	a := domtool.Attrs{
		ID:          id,
		Name:        m[fieldName],
		Description: m[fieldDescription],
		Category:    m[fieldCategory],
		Pricing:     m[fieldPricing],
		Price:       m[fieldPrice],
	}
	if v, ok := m[fieldTagline]; ok {
		a.Tagline = &v
	}
	_ = json.Unmarshal([]byte(m[fieldFeatures]), &a.Features)
	_ = json.Unmarshal([]byte(m[fieldTags]), &a.Tags)
	a.Rating, _ = strconv.ParseFloat(m[fieldRating], 64)
	a.Views, _ = strconv.ParseInt(m[fieldViews], 10, 64)
	a.Featured, _ = strconv.ParseBool(m[fieldFeatured])
	if v := m[fieldCreatedAt]; v != "" {
		a.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	return domtool.Reconstruct(a)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
