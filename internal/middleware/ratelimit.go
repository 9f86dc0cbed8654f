package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter provides request rate limiting per client IP using a token
// bucket per client
type RateLimiter struct {
	clients  map[string]*clientInfo
	mu       sync.Mutex
	requests int           // requests per window
	window   time.Duration // time window
	name     string        // identifier for logging
	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter allowing requests per window,
// with bursts up to requests. Call Close to stop its cleanup goroutine.
func NewRateLimiter(requests int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientInfo),
		requests: requests,
		window:   window,
		name:     name,
		stop:     make(chan struct{}),
	}

	// Start cleanup goroutine to prevent memory leaks
	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("requests", requests),
		logger.Duration("window", window),
	)

	return rl
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes stale entries periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		cleaned := 0
		for ip, info := range rl.clients {
			if now.Sub(info.lastSeen) > rl.window*2 {
				delete(rl.clients, ip)
				cleaned++
			}
		}
		remaining := len(rl.clients)
		rl.mu.Unlock()

		if cleaned > 0 {
			logger.Default().Debug("rate limiter cleanup completed",
				logger.String("name", rl.name),
				logger.Int("cleaned", cleaned),
				logger.Int("remaining", remaining),
			)
		}
	}
}

// isAllowed takes a token for ip. When none is available it reports how long
// the client has to wait for the next one.
func (rl *RateLimiter) isAllowed(ip string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	info, exists := rl.clients[ip]
	if !exists {
		every := rate.Every(rl.window / time.Duration(rl.requests))
		info = &clientInfo{limiter: rate.NewLimiter(every, rl.requests)}
		rl.clients[ip] = info
	}
	info.lastSeen = now
	limiter := info.limiter
	rl.mu.Unlock()

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, rl.window
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, delay
}

// retryAfterSeconds rounds d up to whole seconds, at least one
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

// RateLimit returns a middleware handler that limits requests per IP and
// answers rejected requests with a 429 problem
func RateLimit(w *problemhttp.Writer, limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get client IP (handles X-Forwarded-For for trusted proxies)
		ip := c.ClientIP()

		allowed, wait := limiter.isAllowed(ip)
		if !allowed {
			retryAfter := retryAfterSeconds(wait)
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("limit", limiter.requests),
				logger.Duration("window", limiter.window),
				logger.Int("retry_after", retryAfter),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.requests))
			c.Header("X-RateLimit-Remaining", "0")
			problemhttp.Write(w, c, apierror.NewRateLimitError(retryAfter))
			return
		}

		c.Next()
	}
}
