package ratelimit

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/logx"
)

// Middleware rejects requests that exceed a per-client rate limit.
type Middleware struct {
	logger  logx.Logger
	denied  prometheus.Counter
	limiter Limiter
}

// New creates a rate limiting middleware. A nil limiter disables limiting.
func New(logger logx.Logger, denied prometheus.Counter, limiter Limiter) *Middleware {
	if limiter == nil {
		limiter = NewNopLimiter()
	}
	return &Middleware{
		logger:  logger,
		denied:  denied,
		limiter: limiter,
	}
}

// Handler returns the chi-compatible middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !m.limiter.Allow(key) {
				if m.denied != nil {
					m.denied.Inc()
				}
				if m.logger != nil {
					m.logger.Warn("rate limit exceeded",
						logx.String("client_ip", key),
						logx.String("path", r.URL.Path),
					)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the remote IP. RealIP middleware runs earlier, so
// RemoteAddr already reflects X-Forwarded-For when trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
