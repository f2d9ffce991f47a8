package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrQueryRejected is returned when the backend refuses a query shape, for
// example ordering on a field the index cannot sort. Callers fall back to
// fetching broadly and filtering locally.
var ErrQueryRejected = errors.New("query rejected by store")

// QueryRejectedError wraps ErrQueryRejected with the backend's reason.
type QueryRejectedError struct {
	Reason string
}

func (e *QueryRejectedError) Error() string {
	return fmt.Sprintf("query rejected by store: %s", e.Reason)
}

func (e *QueryRejectedError) Unwrap() error {
	return ErrQueryRejected
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsQueryRejected reports whether err means the backend refused the query
// shape rather than failing on transport.
func IsQueryRejected(err error) bool {
	return errors.Is(err, ErrQueryRejected)
}
