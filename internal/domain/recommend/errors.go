package recommend

import "errors"

// Sentinel kinds for recommendation errors.
var (
	ErrPairNotFound    = errors.New("connection pair not found")
	ErrProfileNotFound = errors.New("candidate profile not found")
)
