package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"shade-storefront/pkg/utils"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(r *http.Request) string

// ClientIPKey charges requests to the client IP.
func ClientIPKey(r *http.Request) string {
	return getClientIP(r)
}

// NewDeviceOrIPKey charges requests to the device when its token verifies, so
// that visitors behind one NAT do not share a bucket. Anything else, forged
// tokens included, is charged to the client IP.
func NewDeviceOrIPKey(tokens *utils.DeviceTokens) KeyFunc {
	return func(r *http.Request) string {
		if tokenString := deviceToken(r); tokenString != "" {
			if deviceID, err := tokens.Validate(tokenString); err == nil {
				return "device:" + deviceID
			}
		}
		return "ip:" + getClientIP(r)
	}
}

// RateLimiter manages per-key rate limiting with background cleanup
type RateLimiter struct {
	clients       map[string]*client
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	keyFn         KeyFunc
	cleanupPeriod time.Duration
	clientTTL     time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter creates a new RateLimiter with background cleanup
// limit: requests per second
// burst: maximum burst size
// cleanupPeriod: how often to remove stale clients
// clientTTL: how long before a client is considered stale
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, keyFn KeyFunc, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	if keyFn == nil {
		keyFn = ClientIPKey
	}
	rl := &RateLimiter{
		clients:       make(map[string]*client),
		limit:         limit,
		burst:         burst,
		keyFn:         keyFn,
		cleanupPeriod: cleanupPeriod,
		clientTTL:     clientTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

// Middleware returns the HTTP middleware handler
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter(rl.keyFn(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				utils.WriteError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.clients[key]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[key] = &client{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.clients {
		if time.Since(v.lastSeen) > rl.clientTTL {
			delete(rl.clients, key)
		}
	}
}

// Shutdown stops the cleanup goroutine
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
