// Package service provides business logic for the application.
package service

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// FieldError describes a single failed validation constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every failing field of a request, not just the first.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a field failure.
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns the error, or nil when no field failed.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// newID generates a store-assigned identifier.
func newID() string {
	return ulid.Make().String()
}

// validID reports whether id is a syntactically valid store identifier.
func validID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
