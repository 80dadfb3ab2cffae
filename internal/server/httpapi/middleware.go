package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// tokenValidator is the slice of auth.TokenService the guard needs.
type tokenValidator interface {
	GetUserIDFromToken(token string) (string, error)
}

// authenticator validates the bearer token on every request under the
// protected subtree and binds the caller's user id to the request context.
// Missing or invalid tokens stop the request with 401 before any handler
// runs. Per-resource ownership is enforced below, at the repository level.
func authenticator(tokens tokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthHeaderName)
			if header == "" || !strings.HasPrefix(header, common.AuthSchemePrefix) {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}

			token := strings.TrimPrefix(header, common.AuthSchemePrefix)
			userID, err := tokens.GetUserIDFromToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDFromContext returns the authenticated caller id set by authenticator.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
