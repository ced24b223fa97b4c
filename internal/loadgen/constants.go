package loadgen

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusAccepted = 202
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	drainPollInterval    = 500 * time.Millisecond
	drainTimeout         = 5 * time.Minute
	PercentageMultiplier = 100
)
