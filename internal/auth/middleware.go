package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the session token on each request and, when valid,
// stows the user id in the request context. Requests without a resolvable
// identity pass through untouched; each handler decides how to surface the
// missing identity (401 for the JSON API, a denial page for HTML).
func Middleware(sessions *Sessions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := requestToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := sessions.Authenticate(r.Context(), token)
		if err == ErrUnauthenticated {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			// A store failure during auth is a server problem, not a
			// credential problem; don't degrade it to "unauthenticated".
			slog.Error("session lookup failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// requestToken extracts the session token from the Authorization header or,
// failing that, the session cookie.
func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
