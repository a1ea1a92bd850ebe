package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout — дедлайн timeouts.service для запросов к движку вовлечённости:
// чтение уведомлений, достижений, членство, админские операции с dead letters.
// Уже выставленный дедлайн не перекрывается; d <= 0 отключает мидлвар.
// Приём событий дедлайн видит, но рассылку он не обрывает: обработка события
// отвязывается от контекста запроса и ограничена fanout.event_timeout.
// Подписки (websocket) живут дольше запроса и этим мидлваром не оборачиваются.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
