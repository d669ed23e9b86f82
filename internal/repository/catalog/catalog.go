// Package catalog loads the tool directory from a YAML file.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// entry is the YAML shape of one tool.
type entry struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Tagline     *string   `yaml:"tagline"`
	Description string    `yaml:"description"`
	Features    []string  `yaml:"features"`
	Tags        []string  `yaml:"tags"`
	Category    string    `yaml:"category"`
	Pricing     string    `yaml:"pricing"`
	Price       string    `yaml:"price"`
	Rating      float64   `yaml:"rating"`
	Views       int64     `yaml:"views"`
	Featured    bool      `yaml:"featured"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type file struct {
	Tools []entry `yaml:"tools"`
}

// Catalog is an immutable in-memory tool list. It implements usecase/search.Source.
type Catalog struct {
	tools []domtool.Tool
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. Entries without an id get a random UUID;
// duplicate ids are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Tools))
	tools := make([]domtool.Tool, 0, len(doc.Tools))
	for i, e := range doc.Tools {
		if strings.TrimSpace(e.ID) == "" {
			e.ID = uuid.NewString()
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}

		t, err := domtool.New(domtool.Attrs{
			ID:          e.ID,
			Name:        e.Name,
			Tagline:     e.Tagline,
			Description: e.Description,
			Features:    e.Features,
			Tags:        e.Tags,
			Category:    e.Category,
			Pricing:     e.Pricing,
			Price:       e.Price,
			Rating:      e.Rating,
			Views:       e.Views,
			Featured:    e.Featured,
			CreatedAt:   e.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		tools = append(tools, t)
	}
	return &Catalog{tools: tools}, nil
}

// FromTools builds a catalog from already validated tools. Duplicate ids are rejected.
func FromTools(tools []domtool.Tool) (*Catalog, error) {
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if _, dup := seen[t.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidRecord, t.ID())
		}
		seen[t.ID()] = struct{}{}
	}
	return &Catalog{tools: slices.Clone(tools)}, nil
}

// List returns the tools matching f in file order.
func (c *Catalog) List(_ context.Context, f domtool.Filter) ([]domtool.Tool, error) {
	return f.Apply(c.tools), nil
}

// All returns every tool in file order.
func (c *Catalog) All() []domtool.Tool {
	return c.tools
}

// Len returns the number of tools.
func (c *Catalog) Len() int { return len(c.tools) }
