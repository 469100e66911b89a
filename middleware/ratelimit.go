// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/pickr/auth"
)

// clientIdle is how long an unused client bucket is kept
const clientIdle = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client. Clients are keyed by a
// salted hash of their address.
type RateLimiter struct {
	limit rate.Limit
	burst int
	salt  string
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

// NewRateLimiter allows perSecond requests per client with an equal burst.
// perSecond <= 0 returns nil, which allows everything.
func NewRateLimiter(perSecond float64, salt string) *RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   int(math.Max(1, math.Ceil(perSecond))),
		salt:    salt,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

// Allow reports whether the client identified by key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > clientIdle {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > clientIdle {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Limit rejects requests over the client's budget with 429
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	if rl == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		key := auth.HashClientIP(GetClientIP(r), rl.salt)
		if !rl.Allow(key) {
			slog.Warn("rate limit exceeded", "client", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next(w, r)
	}
}
