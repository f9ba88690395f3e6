// Package apperror defines the error taxonomy shared by every domain service:
// not-found, business-rule violation, field validation and conflict. The HTTP
// layer maps these onto status codes and the error payload.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict signals a unique-constraint violation surfaced by the
	// storage layer. The database constraint is authoritative; service-level
	// uniqueness pre-checks are only early exits.
	ErrConflict = errors.New("conflict")
)

// NotFoundError reports that an entity id does not resolve to a live row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d was not found", e.Entity, e.ID)
}

// BusinessRuleError reports valid input that violates a domain invariant,
// such as deleting a category that still has live products.
type BusinessRuleError struct {
	Message string
}

func NewBusinessRule(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

func (e *BusinessRuleError) Error() string { return e.Message }

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors aggregates field-level validation failures. They are
// rejected before any persistence call is made.
type ValidationErrors struct {
	Fields []FieldError
}

func NewValidation(field, message string) *ValidationErrors {
	return &ValidationErrors{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationErrors) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationErrors) HasErrors() bool { return len(e.Fields) > 0 }

func (e *ValidationErrors) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// FieldMap renders the failures keyed by field name, the shape the HTTP
// error payload uses.
func (e *ValidationErrors) FieldMap() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

// AsNotFound unwraps err to a *NotFoundError, or nil.
func AsNotFound(err error) *NotFoundError {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	return nil
}

// AsBusinessRule unwraps err to a *BusinessRuleError, or nil.
func AsBusinessRule(err error) *BusinessRuleError {
	var br *BusinessRuleError
	if errors.As(err, &br) {
		return br
	}
	return nil
}

// AsValidation unwraps err to a *ValidationErrors, or nil.
func AsValidation(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
