// Package storeerr defines the error taxonomy shared by the session and
// reading stores. Callers classify failures with errors.Is.
package storeerr

import "errors"

// Unavailable tags err as a store-availability failure while keeping the
// original error in the chain for logging.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrUnavailable, err)
}

var (
	// ErrNotFound is returned when the requested handle or owner has no
	// matching record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned on a duplicate handle at create time.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable is returned when the durable store call failed for
	// transport or availability reasons.
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidInput is returned for malformed input, e.g. a non-numeric
	// reading payload.
	ErrInvalidInput = errors.New("invalid input")
)
