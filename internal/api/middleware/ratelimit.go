package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"grantvet/internal/config"
	"grantvet/internal/infrastructure/cache"
)

// RateLimiter returns middleware that limits requests per client per
// minute, backed by a Redis counter
func RateLimiter(c *cache.RedisCache, cfg config.RateLimitConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)
			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", clientID, window)

			count, err := c.IncrWithTTL(r.Context(), key, 2*time.Minute)
			if err != nil {
				// If Redis is down, let the request through
				next.ServeHTTP(w, r)
				return
			}

			limit := int64(cfg.RequestsPerMinute)
			remaining := limit - count
			if remaining < 0 {
				remaining = 0
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > limit {
				w.Header().Set("Retry-After", strconv.FormatInt(60-time.Now().Unix()%60, 10))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID returns a unique identifier for the client
func getClientID(r *http.Request) string {
	if apiKey := GetAPIKey(r.Context()); apiKey != "" {
		return fmt.Sprintf("key:%s", apiKey)
	}

	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}

	return fmt.Sprintf("ip:%s", ip)
}
