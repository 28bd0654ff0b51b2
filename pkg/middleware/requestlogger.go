package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lightbnb/lightbnb/pkg/logger"
)

// RequestLogger stores a logger carrying the correlation and trace ids in the
// request context. Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
