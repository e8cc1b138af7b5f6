// Package apperr defines the error taxonomy shared by the catalog services.
// Every error carries a kind discriminant so the presentation layer can map
// outcomes to status codes without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStore      Kind = "store"
	KindCache      Kind = "cache"
)

type Error struct {
	Kind   Kind
	Entity string
	Key    any
	// Fields maps field names to validation messages; set only for
	// KindValidation.
	Fields map[string][]string
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return "one or more validation errors occurred"
	case KindNotFound:
		return fmt.Sprintf("%s with key '%v' was not found", e.Entity, e.Key)
	case KindConflict:
		return fmt.Sprintf("%s with key '%v' was modified by another writer", e.Entity, e.Key)
	case KindCache:
		return "cache operation failed"
	default:
		return "store operation failed"
	}
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func NotFound(entity string, key any) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: key}
}

func Conflict(entity string, key any) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Key: key}
}

func Store(cause error) *Error {
	return &Error{Kind: KindStore, cause: cause}
}

func Cache(cause error) *Error {
	return &Error{Kind: KindCache, cause: cause}
}

// From extracts the taxonomy error from err, or nil when err carries none.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf classifies err, defaulting to KindStore for untyped errors so
// unexpected failures surface as generic write failures rather than leaking.
func KindOf(err error) Kind {
	if e := From(err); e != nil {
		return e.Kind
	}
	return KindStore
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
