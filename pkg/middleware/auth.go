package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
	"github.com/lightbnb/lightbnb/pkg/httputil"
	"github.com/lightbnb/lightbnb/pkg/logger"
)

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// Claims are the token fields the API relies on.
type Claims struct {
	UserID int64
	Email  string
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator func(token string) (*Claims, error)

// Auth rejects requests without a valid bearer token. On success the user id
// is stored in the context and added to the request-scoped logger.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("missing authorization header"), nil)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid authorization header format"), nil)
				return
			}

			claims, err := validate(token)
			if err != nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired token"), nil)
				return
			}

			userID := strconv.FormatInt(claims.UserID, 10)
			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = logger.WithUserID(ctx, userID)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("user_id", userID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID stores an authenticated user id in ctx.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
