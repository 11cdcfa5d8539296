// Package apperr defines the error kinds shared by the store, service and
// HTTP layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicateID
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateID:
		return "duplicate_id"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the concrete error type carried across layers.
type Error struct {
	Kind   Kind
	Msg    string
	Err    error
	Fields []FieldError
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return e.Msg + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed client input.
func Validation(msg string, fields ...FieldError) error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}

// DuplicateID reports a create for an id that is already taken.
func DuplicateID(id int64) error {
	return &Error{Kind: KindDuplicateID, Msg: fmt.Sprintf("server already exists with id %d", id)}
}

// NotFound reports a missing server.
func NotFound(id int64) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("invalid server id %d", id)}
}

// Storage wraps a persistence failure, keeping the cause.
func Storage(err error, msg string) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldsOf returns the field errors attached to a validation error.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

func IsValidation(err error) bool  { return KindOf(err) == KindValidation }
func IsDuplicateID(err error) bool { return KindOf(err) == KindDuplicateID }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsStorage(err error) bool     { return KindOf(err) == KindStorage }
