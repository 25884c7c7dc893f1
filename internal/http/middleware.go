package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const sessionKeyContextKey contextKey = "session_key"

// SessionCookieName correlates an anonymous browser with its cart and
// bookmarks. It is not a login identity.
const SessionCookieName = "session_key"

// SessionKeyMiddleware reads the session cookie, issuing a fresh one
// when absent. The cookie lifetime matches the cart TTL so both expire
// together.
func SessionKeyMiddleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				key = cookie.Value
			}
			if key == "" {
				key = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    key,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKeyContextKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(sessionKeyContextKey).(string); ok {
		return key
	}
	return ""
}
