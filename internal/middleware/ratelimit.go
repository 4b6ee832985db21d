package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/pkg/clientip"
)

const (
	// SubmitWindow is the fixed window for feedback submissions.
	SubmitWindow = 10 * time.Minute
	// SubmitMaxRequests is how many submissions one IP may make per window.
	SubmitMaxRequests = 10
	// SubmitKeyPrefix is the Redis key prefix for the submission counters.
	SubmitKeyPrefix = "ratelimit:feedback:"
)

// SubmissionThrottle counts submissions per IP in Redis so the limit holds across instances.
// When the limit is exceeded onLimited answers instead of next. Redis failures let the request through.
func SubmissionThrottle(client *redis.Client, logger *zap.Logger, onLimited http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientip.RealClientIP(r)
			key := SubmitKeyPrefix + ip

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("submission throttle unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, SubmitWindow)
			}

			remaining := SubmitMaxRequests - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(SubmitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > SubmitMaxRequests {
				logger.Info("submission throttled", zap.String("ip", ip), zap.Int64("count", count))
				onLimited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
