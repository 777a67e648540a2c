package core

import "errors"

// Common errors.
var (
	ErrNoSelection    = errors.New("no record selected")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownField   = errors.New("unknown field")
)
