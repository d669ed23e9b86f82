package toolforge

import (
	"errors"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrInvalidRecord     = domain.ErrInvalidRecord
	ErrSourceUnavailable = domain.ErrSourceUnavailable

	// ErrReadOnlySource is returned by Upsert when tools are not stored in Redis.
	ErrReadOnlySource = errors.New("toolforge: source is read-only")
)
