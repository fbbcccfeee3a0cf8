package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// RateLimit ограничивает частоту запросов на пользователя, без Principal ключом служит IP
// Ошибка ограничителя не блокирует запрос
func RateLimit(limiter Limiter, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Error("RateLimit: limiter failure for key=%s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Warn("RateLimit: limit exceeded for key=%s", key)
				handlers.RespondRejection(w, http.StatusTooManyRequests, handlers.KindRateLimited, msgRateLimited, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if principal, ok := GetPrincipal(r.Context()); ok {
		return "user:" + strconv.FormatInt(principal.UserID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
