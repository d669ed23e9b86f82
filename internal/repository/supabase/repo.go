package supabase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// DefaultTable is the PostgREST table holding the directory.
const DefaultTable = "tools"

// Config holds Supabase connection configuration.
type Config struct {
	URL    string
	APIKey string
	Table  string
}

// Repo reads tools from a Supabase table. It implements usecase/search.Source.
type Repo struct {
	client *supabase.Client
	table  string
}

// New creates a Supabase-backed tool source.
func New(cfg Config) (*Repo, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("supabase API key is required")
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Repo{client: client, table: cfg.Table}, nil
}

// List fetches the tools matching f, ordered by ID.
// Category and pricing compare case-insensitively, like tool.Filter in memory.
func (r *Repo) List(_ context.Context, f domtool.Filter) ([]domtool.Tool, error) {
	q := r.client.From(r.table).Select("*", "", false)
	if f.Category != "" {
		q = q.Ilike("category", f.Category)
	}
	if f.Pricing != "" {
		q = q.Ilike("pricing", f.Pricing)
	}
	if f.FeaturedOnly {
		q = q.Eq("featured", "true")
	}

	var rows []row
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select %s: %w: %w", r.table, domain.ErrSourceUnavailable, err)
	}

	tools := make([]domtool.Tool, 0, len(rows))
	for _, rw := range rows {
		tools = append(tools, rw.toTool())
	}
	slices.SortStableFunc(tools, func(a, b domtool.Tool) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return tools, nil
}

// Ping checks that the table is reachable.
func (r *Repo) Ping(_ context.Context) error {
	var rows []row
	if _, err := r.client.From(r.table).Select("id", "", false).Limit(1, "").ExecuteTo(&rows); err != nil {
		return fmt.Errorf("ping %s: %w", r.table, err)
	}
	return nil
}

// row is the JSON shape of a tools table row.
type row struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Tagline     *string    `json:"tagline"`
	Description string     `json:"description"`
	Features    []string   `json:"features"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	Pricing     string     `json:"pricing"`
	Price       string     `json:"price"`
	Rating      float64    `json:"rating"`
	Views       int64      `json:"views"`
	Featured    bool       `json:"featured"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (rw row) toTool() domtool.Tool {
	a := domtool.Attrs{
		ID:          rw.ID,
		Name:        rw.Name,
		Tagline:     rw.Tagline,
		Description: rw.Description,
		Features:    rw.Features,
		Tags:        rw.Tags,
		Category:    rw.Category,
		Pricing:     rw.Pricing,
		Price:       rw.Price,
		Rating:      rw.Rating,
		Views:       rw.Views,
		Featured:    rw.Featured,
	}
	if rw.CreatedAt != nil {
		a.CreatedAt = *rw.CreatedAt
	}
	return domtool.Reconstruct(a)
}
