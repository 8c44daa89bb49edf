package backup

import "errors"

// Sentinel kinds for backup errors.
var (
	ErrMalformedImport = errors.New("malformed backup document")
)
