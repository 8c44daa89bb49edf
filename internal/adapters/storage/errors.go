package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrWriteFailed = errors.New("state write failed")
	ErrOpenStore   = errors.New("open store failed")
)
