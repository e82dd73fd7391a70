// Package validation evaluates declarative field rules on plain structs and
// turns the failures into human-readable messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rules maps "Field.tag" (or just "Field") to the message shown when that rule fails.
type Rules map[string]string

// FieldError is a single failed rule on a single field.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Error collects every failed field of a validated value.
// It is returned by usecases and rendered by handlers as 400 Bad Request.
type Error struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable message of each failed field, in field order.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

// NewError builds an Error from plain messages, e.g. for storage constraint violations.
func NewError(field, rule, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// validatorのインスタンスはスレッドセーフでキャッシュを持つため共有する
var validate = validator.New(validator.WithRequiredStructEnabled())

// Check validates v against its `validate` struct tags and returns every failure.
// The validator stops at the first failing tag of a field, so each field
// contributes at most one FieldError. Returns nil when v is valid.
func Check(v any, rules Rules) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: v is not a struct
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.StructField(),
			Rule:    fe.Tag(),
			Message: message(fe, rules),
		})
	}
	return out
}

// Validate is Check wrapped as an error: nil when v is valid, *Error otherwise.
func Validate(v any, rules Rules) error {
	if fields := Check(v, rules); len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

func message(fe validator.FieldError, rules Rules) string {
	if m, ok := rules[fe.StructField()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := rules[fe.StructField()]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid.", fe.StructField())
}
