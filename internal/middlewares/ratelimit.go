package middlewares

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

const (
	clientTTL       = 3 * time.Minute
	cleanupInterval = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-IP token bucket of rps tokens per second
// with the given burst. Idle clients are evicted until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mu.Lock()
				for ip, c := range clients {
					if time.Since(c.lastSeen) > clientTTL {
						delete(clients, ip)
					}
				}
				mu.Unlock()
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				// chi's RealIP stores a bare address without a port
				ip = r.RemoteAddr
			}

			mu.Lock()
			c, found := clients[ip]
			if !found {
				c = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			allowed := c.limiter.Allow()
			mu.Unlock()

			if !allowed {
				logger.Log.Warnw("rate limit exceeded", "ip", ip, "uri", r.RequestURI)
				responses.Error(w, http.StatusTooManyRequests, responses.CodeRateLimitExceeded, "Rate limit exceeded, retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
