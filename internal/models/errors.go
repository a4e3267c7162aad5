package models

import "errors"

// Custom errors
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidOdds = errors.New("invalid odds")
)
