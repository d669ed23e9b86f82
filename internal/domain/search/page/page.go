package page

import (
	"fmt"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
)

// Page selects one window of an ordered result list (1-based).
type Page struct {
	number int
	size   int
}

// New validates a page request. number must be ≥ 1 and size within 1..maxSize.
func New(number, size, maxSize int) (Page, error) {
	if number < 1 {
		return Page{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidQuery)
	}
	if size < 1 || size > maxSize {
		return Page{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidQuery, maxSize)
	}
	return Page{number: number, size: size}, nil
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Offset returns the index of the first item on the page.
func (p Page) Offset() int { return (p.number - 1) * p.size }

// Window is one page of items plus totals.
type Window[T any] struct {
	Items   []T
	Total   int
	HasMore bool
}

// Slice cuts the page out of items. Pages past the end are empty.
// Items share the backing array of the input.
func Slice[T any](items []T, p Page) Window[T] {
	total := len(items)
	start := min(p.Offset(), total)
	end := min(start+p.size, total)
	return Window[T]{
		Items:   items[start:end:end],
		Total:   total,
		HasMore: end < total,
	}
}
