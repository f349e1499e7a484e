package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// SessionHeader carries the browsing session id on cart requests
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

type sessionChecker interface {
	Exists(id string) bool
}

// RequireSession rejects requests without a live session.
// A missing header is 401, an unknown or expired session is 404.
func RequireSession(sessions sessionChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(SessionHeader))

			if id == "" {
				writeError(w, http.StatusUnauthorized, "Session required")
				return
			}

			if !sessions.Exists(id) {
				writeError(w, http.StatusNotFound, "Session not found")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id stored by RequireSession, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
