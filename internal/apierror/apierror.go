// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Success is serialized explicitly (always false) so clients can branch on a
// single field for both happy and error paths.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// Wrap attaches the underlying error text to the envelope. Callers must ensure
// err is safe to expose; repository and infra errors are not, use New for those.
func Wrap(msg string, err error) *APIError {
	e := &APIError{Message: msg}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: fields}
}
