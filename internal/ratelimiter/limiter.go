package ratelimiter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientLimiters holds one token bucket limiter per client key (usually the
// client IP). Buckets are created lazily and dropped after they sit idle.
type ClientLimiters struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a ClientLimiters granting ratePerSec tokens per second to each
// client with the given burst capacity.
func New(ratePerSec float64, burst int) *ClientLimiters {
	return &ClientLimiters{
		limit:   rate.Limit(ratePerSec),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Allow reports whether the client identified by key may proceed now,
// consuming one token if so.
func (cl *ClientLimiters) Allow(key string) bool {
	now := cl.now()

	cl.mu.Lock()
	c, ok := cl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[key] = c
	}
	c.lastSeen = now
	cl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (cl *ClientLimiters) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// Sweep drops clients not seen within idle and returns how many were removed.
func (cl *ClientLimiters) Sweep(idle time.Duration) int {
	cutoff := cl.now().Add(-idle)

	cl.mu.Lock()
	defer cl.mu.Unlock()

	removed := 0
	for key, c := range cl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(cl.clients, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every interval until ctx is cancelled.
func (cl *ClientLimiters) Run(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("rate limiter sweeper started", zap.Duration("interval", interval), zap.Duration("idle_ttl", idle))

	for {
		select {
		case <-ctx.Done():
			logger.Info("rate limiter sweeper stopping")
			return
		case <-ticker.C:
			if n := cl.Sweep(idle); n > 0 {
				logger.Debug("swept idle rate limit buckets", zap.Int("removed", n))
			}
		}
	}
}
