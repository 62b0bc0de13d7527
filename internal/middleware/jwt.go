package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/todo-api/internal/apperr"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const UserIDKey key = "user_id"

// TokenAuthenticator resolves a bearer token to a user id.
type TokenAuthenticator interface {
	Authenticate(token string) (int, error)
}

// Authenticate rejects requests without a valid "Authorization: Bearer <token>"
// header with 401 and otherwise stores the caller's user id in the request context.
func Authenticate(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			scheme, tokenStr, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				writeError(w, "authorization header must use the Bearer scheme", http.StatusUnauthorized)
				return
			}

			userID, err := auth.Authenticate(strings.TrimSpace(tokenStr))
			if err != nil {
				slog.Debug("token rejected",
					"request_id", chimw.GetReqID(r.Context()),
					"path", r.URL.Path,
					"err", err)
				msg := apperr.Message(err)
				if msg == "" {
					msg = "invalid token"
				}
				writeError(w, msg, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id stored by Authenticate.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// WithUserID returns a copy of ctx carrying userID, as Authenticate would.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
