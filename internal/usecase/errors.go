package usecase

import "errors"

// Error kinds surfaced to the transport layer. The database layer
// translates its driver errors into these before they leave the repo.
var (
	// ErrNotFound indicates the target id does not exist in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a uniqueness invariant was violated,
	// e.g. a duplicate user email.
	ErrConflict = errors.New("record already exists")

	// ErrUnavailable indicates the document store cannot be reached.
	// Requests failing with it are safe to retry as a whole.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed input detected before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
