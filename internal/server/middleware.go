package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/thebestsalad/portfolio/internal/visitors"
)

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// statsAuth requires the configured bearer token. An empty token leaves the
// route open since it only exposes aggregates.
func statsAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// visitorTracking records rendered views after the handler runs. Requests
// carrying DNT: 1 and anything that is not a view are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isStatic(c.Request.URL.Path) {
			c.Next()
			return
		}
		c.Next()

		if c.GetHeader("DNT") == "1" {
			return
		}
		view := c.GetString(viewKey)
		if view == "" {
			return
		}

		v := visitors.Visit{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      c.Request.URL.Path,
			View:      view,
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.visits.Track(ctx, v); err != nil {
				s.logger.Warn("recording visit", "error", err)
			}
		}()
	}
}

// ipLimiter hands out one token bucket per client IP. Idle buckets are
// dropped once the table grows past maxLimiters.
type ipLimiter struct {
	perMinute int
	now       func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

const (
	maxLimiters = 4096
	limiterIdle = 10 * time.Minute
)

// newIPLimiter allows perMinute posts per IP with a burst of the same size.
// Zero disables limiting.
func newIPLimiter(perMinute int, now func() time.Time) *ipLimiter {
	return &ipLimiter{perMinute: perMinute, now: now, buckets: make(map[string]*bucket)}
}

func (l *ipLimiter) Allow(ip string) bool {
	if l.perMinute <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[ip]
	if !ok {
		if len(l.buckets) >= maxLimiters {
			l.prune(now)
		}
		b = &bucket{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

func (l *ipLimiter) prune(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > limiterIdle {
			delete(l.buckets, ip)
		}
	}
}

// isStatic reports paths that never count as views.
func isStatic(path string) bool {
	return strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/favicon")
}
