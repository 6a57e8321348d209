package results

import "errors"

var (
	// ErrNoResult is returned when no completed quiz is on record for the user.
	ErrNoResult = errors.New("no quiz result on record")
	// ErrInvalidResult rejects entries that violate the result invariants.
	ErrInvalidResult = errors.New("invalid quiz result")
	// ErrInvalidSortField rejects ranking requests over unknown fields.
	ErrInvalidSortField = errors.New("invalid sort field")
)
