// AngelaMos | 2026
// auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// Authenticator attaches the caller's bearer token and workspace selection
// to the request context. The session itself is validated by the access
// policy at the start of every operation, not here.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			core.JSONError(w, core.UnauthorizedError("missing authorization token"))
			return
		}

		caller := access.Caller{
			Token:     token,
			Selection: access.ParseSelection(r.Header.Get(access.SelectionHeader)),
		}

		next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
