package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies business-rule violations produced by the domain managers.
// Both kinds are caused by caller input and are reported as client errors.
type ErrorKind string

const (
	KindNotFoundOrInvalid ErrorKind = "NOT_FOUND_OR_INVALID"
	KindIllegalTransition ErrorKind = "ILLEGAL_TRANSITION"
)

// Sentinels for errors.Is matching against a *DomainError of the same kind.
var (
	ErrNotFoundOrInvalid = errors.New("referenced entity not found or invalid")
	ErrIllegalTransition = errors.New("illegal state transition")
)

// DomainError carries the kind of violation plus the offending identifiers.
// Field names the request field the violation belongs to (e.g. "id", "author_ids").
type DomainError struct {
	Kind    ErrorKind
	Field   string
	IDs     []int64
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	switch target {
	case ErrNotFoundOrInvalid:
		return e.Kind == KindNotFoundOrInvalid
	case ErrIllegalTransition:
		return e.Kind == KindIllegalTransition
	}
	return false
}

// NotFound reports a single unknown target entity, e.g. the book being updated.
func NotFound(field, entity string, id int64) *DomainError {
	return &DomainError{
		Kind:    KindNotFoundOrInvalid,
		Field:   field,
		IDs:     []int64{id},
		Message: fmt.Sprintf("%s does not exist: id=%d", entity, id),
	}
}

// MissingReferences reports referenced ids the store does not know.
// ids keeps the order in which the caller supplied them.
func MissingReferences(field, entity string, ids []int64) *DomainError {
	return &DomainError{
		Kind:    KindNotFoundOrInvalid,
		Field:   field,
		IDs:     ids,
		Message: fmt.Sprintf("%s does not exist: id=%v", entity, ids),
	}
}

// InvalidReference reports a reference set that is unusable as a whole.
func InvalidReference(field, message string) *DomainError {
	return &DomainError{
		Kind:    KindNotFoundOrInvalid,
		Field:   field,
		Message: message,
	}
}

func IllegalTransition(field, message string) *DomainError {
	return &DomainError{
		Kind:    KindIllegalTransition,
		Field:   field,
		Message: message,
	}
}
