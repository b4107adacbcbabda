package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/infrastructure/metrics"
	"github.com/rooted/backend/internal/usecase"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// CORSMiddleware handles CORS for the storefront
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		// Trailing wildcard, e.g. http://localhost:*
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// RequestIDMiddleware propagates or assigns an X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// LoggerMiddleware logs each request with zap and records request metrics
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// RecoveryMiddleware recovers from panics and answers with the friendly fallback reply
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"text":           usecase.FallbackReply,
			"suggestedFarms": []string{},
		})
	})
}

// limiterIdleTTL is how long an IP may stay silent before its bucket is dropped.
// It must exceed the one minute a bucket needs to refill.
const limiterIdleTTL = 3 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client IP and sweeps idle ones
type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:  make(map[string]*ipLimiter),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idleTTL:   limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops limiters idle for longer than idleTTL. Caller holds mu.
func (l *ipRateLimiter) sweep(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimitMiddleware allows perMinute requests per client IP; 0 disables it
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := newIPRateLimiter(perMinute)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": domain.ErrRateLimited.Error(),
			})
			return
		}
		c.Next()
	}
}
