package sink

import "errors"

// Sentinel kinds for sink errors, matchable with errors.Is.
var (
	ErrCannotCreate = errors.New("cannot create log file")
	ErrWriteFailed  = errors.New("log write failed")
)
