// Package throttle limits how often the scraper hits a single site.
package throttle

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/scraper"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused host limiter is kept.
const DefaultIdleTTL = 10 * time.Minute

var _ scraper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each host with a token bucket of burst 1.
// Hosts are limited independently; a zero rate disables limiting.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*hostLimiter
	rps      float64
	idleTTL  time.Duration
	now      func() time.Time
}

type hostLimiter struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*hostLimiter),
		rps:      rps,
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}
	return d.limiter(strings.ToLower(domain)).Wait(ctx)
}

// Len returns the number of hosts currently tracked.
func (d *DomainLimiter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.limiters)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.evict(now)

	h, ok := d.limiters[domain]
	if !ok {
		h = &hostLimiter{limiter: rate.NewLimiter(rate.Limit(d.rps), 1)}
		d.limiters[domain] = h
	}
	h.lastUsed = now
	return h.limiter
}

// evict drops limiters idle for longer than idleTTL. Must be called with
// mu held.
func (d *DomainLimiter) evict(now time.Time) {
	for domain, h := range d.limiters {
		if now.Sub(h.lastUsed) > d.idleTTL {
			delete(d.limiters, domain)
		}
	}
}
