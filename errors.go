package graphrefs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotRecord is returned when a value, registration, or reference
	// target is not a named struct type
	ErrNotRecord = errors.New("not a record type")

	// ErrUnknownName is returned when a named reference cannot be
	// resolved in the scope it is extracted against
	ErrUnknownName = errors.New("unknown record name")

	// ErrMissingName is returned when an attribute, context, or named
	// reference field has no name in its ref tag
	ErrMissingName = errors.New("missing name in ref tag")

	// ErrAbstractTarget is returned when a reference target is an
	// interface type and therefore names no concrete record
	ErrAbstractTarget = errors.New("abstract reference target")

	// ErrDuplicateName is returned when a scope registration collides
	// with a different type already registered under the same name
	ErrDuplicateName = errors.New("record name already registered")
)

// ResolutionError reports a failure to classify the reference fields of
// a record type. It wraps one of the sentinel errors above, so callers
// can branch with errors.Is and recover the location with errors.As.
type ResolutionError struct {
	Record reflect.Type // record type under analysis; nil when the input itself was invalid
	Field  string       // offending field; "" when the record as a whole is at fault
	Err    error
}

// Error formats the failure with its location.
func (e *ResolutionError) Error() string {
	switch {
	case e.Record == nil:
		return fmt.Sprintf("resolve: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("resolve %s: %v", e.Record, e.Err)
	default:
		return fmt.Sprintf("resolve %s.%s: %v", e.Record, e.Field, e.Err)
	}
}

// Unwrap exposes the sentinel reason to errors.Is and errors.As.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// resolutionErr builds a field-level ResolutionError.
func resolutionErr(record reflect.Type, field string, err error) error {
	return &ResolutionError{Record: record, Field: field, Err: err}
}
