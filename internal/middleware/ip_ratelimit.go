package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
)

// ChatRateLimitMiddleware throttles the public chat endpoint per client IP.
// It sits behind chi's RealIP middleware, so RemoteAddr is the caller.
type ChatRateLimitMiddleware struct {
	limiter *service.RateLimiter
	limit   int
	window  time.Duration
}

func NewChatRateLimitMiddleware(limiter *service.RateLimiter, limit int, window time.Duration) *ChatRateLimitMiddleware {
	return &ChatRateLimitMiddleware{limiter: limiter, limit: limit, window: window}
}

func (m *ChatRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "chat:ip:" + r.RemoteAddr
		allowed, resetAt := m.limiter.CheckLimit(r.Context(), key, m.limit, m.window)
		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many messages. Please slow down.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
