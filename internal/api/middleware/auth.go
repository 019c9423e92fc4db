package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/afrikoop/server/internal/api/problem"
	"github.com/afrikoop/server/internal/domain/accounts"
)

// TokenPrefix is the expected Authorization scheme, matching the
// header format clients send: "Authorization: Token <key>".
const TokenPrefix = "Token "

type contextKeyUser string

const userContextKey contextKeyUser = "authenticatedUser"

// Authenticator resolves a token key to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*accounts.User, error)
}

// TokenAuth guards handlers that require an authenticated user. The
// resolved user is stored on the request context.
func TokenAuth(auth Authenticator, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := TokenFromRequest(r)
			if key == "" {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, env,
					problem.WithDetail("Authentication credentials were not provided."))
				return
			}

			user, err := auth.Authenticate(r.Context(), key)
			if err != nil {
				if errors.Is(err, accounts.ErrInvalidToken) {
					problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, env,
						problem.WithDetail("Invalid token."))
					return
				}
				// A lookup failure is a server fault, not the client's.
				problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, env)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the token key from the Authorization
// header. Returns "" when the header is missing or malformed.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, TokenPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(TokenPrefix):])
}

// UserFromContext retrieves the authenticated user set by TokenAuth.
// Returns nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *accounts.User {
	if ctx == nil {
		return nil
	}
	if user, ok := ctx.Value(userContextKey).(*accounts.User); ok {
		return user
	}
	return nil
}

// ContextWithUser attaches a user to a context (exported for tests).
func ContextWithUser(ctx context.Context, user *accounts.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
