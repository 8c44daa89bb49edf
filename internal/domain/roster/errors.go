package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrDuplicateName = errors.New("player name already exists")
	ErrUnknownPlayer = errors.New("player not found")
)
