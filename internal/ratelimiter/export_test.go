package ratelimiter

import "time"

// SetClock replaces the limiter's time source.
func (cl *ClientLimiters) SetClock(now func() time.Time) { cl.now = now }
