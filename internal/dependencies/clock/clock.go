package clock

import "time"

// Clock abstracts the current time so session expiry, solve timestamps and
// visit records can be tested deterministically
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
