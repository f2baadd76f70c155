package auth

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session
// token. Handlers set and clear it; the middleware reads it.
const SessionCookie = "session"

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the session stored in the context.
type contextKey string

const sessionKey contextKey = "session"

// RequireAuth enforces authentication on protected routes. It reads the
// session token from the cookie (or an Authorization bearer header),
// validates it, and stores the session in the request context. Missing or
// invalid tokens end the chain with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := extractSession(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid session required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session set by RequireAuth. The second
// return is false when the request carried no valid session.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.AccountID > 0
}

// extractSession reads the token from the session cookie, falling back to
// an "Authorization: Bearer <token>" header for non-browser clients.
func extractSession(r *http.Request, tokens *TokenService) (Session, error) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return tokens.Validate(cookie.Value)
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return tokens.Validate(token)
	}

	return Session{}, http.ErrNoCookie
}
