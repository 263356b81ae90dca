package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

var (
	// ErrCapacityRace marks a ValidationError raised when a guarded capacity
	// update matched zero rows, i.e. a concurrent writer took the last spots.
	ErrCapacityRace = cr.New("capacity race")

	// ErrRowNotReturned is an internal failure: an insert that must return a row
	// returned none.
	ErrRowNotReturned = cr.New("row not returned from insert")
)

// NotFoundError means the entity does not exist or belongs to another organization.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ValidationError is a business rule violation. Message is user facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NotFound(entity string, id fmt.Stringer) error {
	return cr.WithStack(&NotFoundError{Entity: entity, ID: id.String()})
}

func Validation(format string, args ...any) error {
	return cr.WithStack(&ValidationError{Message: fmt.Sprintf(format, args...)})
}

func CapacityExceeded() error {
	return cr.Mark(cr.WithStack(&ValidationError{Message: "capacity exceeded"}), ErrCapacityRace)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return cr.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return cr.As(err, &ve)
}

func IsCapacityRace(err error) bool {
	return cr.Is(err, ErrCapacityRace)
}

// UserMessage returns the message safe to show to the caller, or "" when the
// error is not a domain error.
func UserMessage(err error) string {
	var ve *ValidationError
	if cr.As(err, &ve) {
		return ve.Message
	}
	var nf *NotFoundError
	if cr.As(err, &nf) {
		return nf.Error()
	}
	return ""
}
