package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
)

// Counter часть redis-клиента для счётчика запросов
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimit фиксированное окно на пользователя (или IP до аутентификации).
// При недоступности Redis запрос пропускается. counter == nil выключает ограничение
func RateLimit(counter Counter, scope string, limit int, window time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s:%s", scope, clientKey(r))

			count, err := counter.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("RateLimit: redis unavailable, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := counter.Expire(r.Context(), key, window).Err(); err != nil {
					logger.Warn("RateLimit: failed to set window for %s: %v", key, err)
				}
			}

			if count > int64(limit) {
				logger.Warn("RateLimit: %s exceeded %d requests per %s", key, limit, window)
				w.Header().Set("Retry-After", fmt.Sprintf("%.0f", window.Seconds()))
				handlers.RespondTooManyRequests(w, "too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
