package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPairNotFound     = errors.New("pair not found")
	ErrMissingProfileID = errors.New("profile id must not be empty")
)
