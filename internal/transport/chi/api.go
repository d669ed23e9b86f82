package chi

import "time"

// ErrorResponseCode is the machine-readable error code in an ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodeNotFound          ErrorResponseCode = "not_found"
	ErrorResponseCodeUnauthorized      ErrorResponseCode = "unauthorized"
	ErrorResponseCodeSourceUnavailable ErrorResponseCode = "source_unavailable"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// ToolResponse is a directory entry as returned to clients.
type ToolResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Tagline     *string    `json:"tagline,omitempty"`
	Description string     `json:"description"`
	Features    []string   `json:"features"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	Pricing     string     `json:"pricing"`
	Price       string     `json:"price,omitempty"`
	Rating      float64    `json:"rating"`
	Views       int64      `json:"views"`
	Featured    bool       `json:"featured"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// SearchResponse is one page of ranked or sorted tools.
type SearchResponse struct {
	Items       []ToolResponse `json:"items"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	HasMore     bool           `json:"has_more"`
	Cached      bool           `json:"cached"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// SuggestionsResponse carries autocomplete strings.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchToolsParams are the query parameters of GET /api/tools/search.
type SearchToolsParams struct {
	Q           *string
	Page        *int
	Limit       *int
	Category    *string
	Pricing     *string
	SortBy      *string
	Featured    *bool
	Suggestions *bool
}

// SuggestToolsParams are the query parameters of GET /api/tools/suggestions.
type SuggestToolsParams struct {
	Q     *string
	Limit *int
}
