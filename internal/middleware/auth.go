// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"inkwell/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// UserKey is the context key for the authenticated username.
	UserKey contextKey = "user"
)

// LoadSession resolves the session cookie against the authority and, when
// valid, stores the username in the request context. Downstream handlers
// read it via UsernameFromCtx(). This middleware does NOT enforce
// authentication — it just loads the session if one exists.
func LoadSession(auth *session.Authority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token != "" {
				if username, ok := auth.Authenticate(token); ok {
					ctx := context.WithValue(r.Context(), UserKey, username)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401. Must be applied
// after LoadSession in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UsernameFromCtx(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UsernameFromCtx extracts the authenticated username from the request
// context. Returns "" if no session is loaded.
func UsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(UserKey).(string)
	return username
}
