// Package apierror provides standardized error response structures for the
// API. All errors returned to clients go through this package so internal
// details (stack traces, DB errors) never leak to the dashboard.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// The UI renders Detail as a dismissible message; no failure crashes the app.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}
