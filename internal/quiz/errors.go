package quiz

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the HTTP layer can map it to a
// status code and clients can special-case it.
type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindAlreadyTaken     Kind = "already_taken"
	KindNotTaken         Kind = "not_taken"
)

type Error struct {
	Kind    Kind
	Field   string // set for validation failures only
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match any two domain errors of the same kind, so
// sentinel values like ErrAlreadyTaken work as comparison targets.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrAlreadyTaken = &Error{Kind: KindAlreadyTaken, Message: "user has already taken this quiz, cannot retake it"}
	ErrNotTaken     = &Error{Kind: KindNotTaken, Message: "user did not attempt this quiz"}
)

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: message}
}

// KindOf extracts the domain kind from err, or "" for non-domain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
