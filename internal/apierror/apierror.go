// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Conflict is the envelope for optimistic-version mismatches. It carries both
// versions so the client can re-read the record and retry with a fresh token.
type Conflict struct {
	Detail          string `json:"detail"`
	ExpectedVersion int    `json:"expected_version"`
	GotVersion      int    `json:"got_version"`
}

func NewConflict(msg string, expected, got int) *Conflict {
	return &Conflict{Detail: msg, ExpectedVersion: expected, GotVersion: got}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}
