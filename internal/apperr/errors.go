package apperr

import "errors"

var (
	// ErrInputFormat marks a malformed export file: the root value is
	// not an array, or a record lacks its conversation_id.
	ErrInputFormat = errors.New("invalid export format")
	// ErrUsage marks a bad invocation, reported before any file I/O.
	ErrUsage = errors.New("usage error")
)
