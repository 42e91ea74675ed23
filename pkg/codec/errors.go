package codec

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	// ErrMalformedResponse means the document is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnexpectedShape means the JSON parsed but cannot be resolved against the target type.
	ErrUnexpectedShape = errors.New("unexpected shape")
	// ErrInvalidFormat means a typed value (e.g. a timestamp) did not match its wire format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrDuplicateSchema is returned when two schemas register under one name.
	ErrDuplicateSchema = errors.New("duplicate schema name")
)

// FieldError records where in an object graph a conversion failed.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func shapeError(want string, got any) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedShape, want, describe(got))
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}
