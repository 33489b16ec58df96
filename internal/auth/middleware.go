package auth

import (
	"errors"
	"log"
	"net/http"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/session/repository"
)

// CookieName returns the session cookie name for the given prefix, e.g. "capstone_session".
func CookieName(prefix string) string {
	return prefix + "_session"
}

// Middleware resolves the session cookie into a session on the request
// context. A missing or unknown cookie leaves the request anonymous; a
// store outage fails the request with 503.
func Middleware(store repository.Store, cookiePrefix string) func(http.Handler) http.Handler {
	cookieName := CookieName(cookiePrefix)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := store.GetSession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, storeerr.ErrNotFound) {
					// Stale cookie; treat as anonymous.
					next.ServeHTTP(w, r)
					return
				}
				log.Printf("auth: resolve session: %v", err)
				http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}
