package middleware

import (
	"context"
	"net/http"
	"strings"

	"activity-hub/internal/auth"

	"go.uber.org/zap"
)

type contextKey string

// UserIDKey is the key used to store the caller's user ID in the context
const UserIDKey contextKey = "user_id"

// SetUserIDInContext saves the user ID in the request context
func SetUserIDInContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the caller's user ID, or 0 for an anonymous
// request.
func UserIDFromContext(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)
	return userID
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Identity decodes the bearer token, if any, and stores the user ID in the
// request context. Requests without a usable token go through as anonymous;
// handlers that need a user reject them with 401.
func Identity(codec auth.TokenCodec, logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := codec.Parse(token)
		if err != nil {
			logger.Debugf("Identity: ignoring unusable token on %s %s: %v", r.Method, r.URL.Path, err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetUserIDInContext(r.Context(), userID)))
	})
}
