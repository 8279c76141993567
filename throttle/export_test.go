package throttle

import "time"

// SetClock replaces the limiter's clock and idle TTL for tests.
func (d *DomainLimiter) SetClock(now func() time.Time, idleTTL time.Duration) {
	d.now = now
	d.idleTTL = idleTTL
}
