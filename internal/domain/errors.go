package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals search parameters that cannot be served.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a tool record that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrSourceUnavailable signals that the candidate set could not be fetched.
	ErrSourceUnavailable = errors.New("candidate source unavailable")
)
