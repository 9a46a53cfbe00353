// Package apperr defines the domain error taxonomy shared by services and
// repositories. Handlers inspect these types with errors.As to pick the HTTP
// status; everything here is an expected, recoverable outcome — an invariant
// actually violated in storage (e.g. negative quantity) is NOT modeled here
// and surfaces as a plain error.
package apperr

import (
	"fmt"
	"strconv"
)

// ValidationError rejects malformed or semantically invalid input before any
// mutation: negative quantities where disallowed, identical source and
// destination locations, insufficient stock.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports an optimistic-version mismatch on adjust. Expected is
// the version currently stored, Got the stale token the caller supplied; both
// are carried so the client can refresh and retry.
type ConflictError struct {
	Expected int
	Got      int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, got %d", e.Expected, e.Got)
}

// NotFoundError reports a referenced part or location that does not exist in
// the catalog. Ref is the identifier as the caller supplied it — a numeric id
// or a part number.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

// NotFound builds a NotFoundError for a numeric id.
func NotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, Ref: strconv.FormatUint(uint64(id), 10)}
}

// ConstraintError reports a uniqueness or referential-integrity violation,
// e.g. a duplicate location name or deleting a part that still has stock.
type ConstraintError struct {
	Reason string
}

func (e *ConstraintError) Error() string { return e.Reason }
