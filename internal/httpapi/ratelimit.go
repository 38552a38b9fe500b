package httpapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter hands out one token-bucket rate.Limiter per client IP, so one
// noisy client can't starve everyone else's burst allowance.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// newIPRateLimiter builds a limiter allowing ratePerMinute requests per minute per
// IP, with a burst equal to that same rate (one minute's worth up front).
func newIPRateLimiter(ratePerMinute int) *ipRateLimiter {
	if ratePerMinute <= 0 {
		ratePerMinute = 1
	}
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(float64(ratePerMinute) / 60),
		burst:    ratePerMinute,
	}
}

func (l *ipRateLimiter) forIP(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = lim
	}
	return lim
}

// Middleware rejects requests over the configured per-IP rate with 429.
func (l *ipRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.forIP(c.RealIP()).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}
