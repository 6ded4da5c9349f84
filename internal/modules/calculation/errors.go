// README: Validation error kinds and the field-path keyed error value.
package calculation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequiredField  = errors.New("required field")
	ErrPositiveNumber = errors.New("not a positive number")
	ErrMinLength      = errors.New("too short")
	ErrInvalidType    = errors.New("invalid type")
	ErrMalformedInput = errors.New("malformed calculation input")
)

// Codes double as locale keys under "validation.".
const (
	CodeRequired    = "required"
	CodePositive    = "positive"
	CodeMinLength   = "min_length"
	CodeInvalidType = "invalid_type"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Min is set for min_length errors.
	Min  int   `json:"min,omitempty"`
	kind error
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return e.kind
}

func requiredError(field string) FieldError {
	return FieldError{Field: field, Code: CodeRequired, Message: "Required", kind: ErrRequiredField}
}

func positiveError(field string) FieldError {
	return FieldError{Field: field, Code: CodePositive, Message: "Must be a positive number", kind: ErrPositiveNumber}
}

func minLengthError(field string, min int) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeMinLength,
		Message: fmt.Sprintf("Must be at least %d characters", min),
		Min:     min,
		kind:    ErrMinLength,
	}
}

func invalidTypeError(field, want string) FieldError {
	return FieldError{Field: field, Code: CodeInvalidType, Message: "Expected " + want, kind: ErrInvalidType}
}

// ValidationError lists every failed field of a rejected request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "calculation: invalid request: " + strings.Join(parts, "; ")
}

// Is reports whether any field failed with target.
func (e *ValidationError) Is(target error) bool {
	for _, f := range e.Fields {
		if f.kind == target {
			return true
		}
	}
	return false
}

// Field returns the error recorded for path, if any.
func (e *ValidationError) Field(path string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == path {
			return f, true
		}
	}
	return FieldError{}, false
}

// Messages maps field path to message.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}
