package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInsufficientParticipants = errors.New("fewer than two scored participants")
)
