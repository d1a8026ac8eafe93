// Package session implements the editor session authority: an in-process,
// synchronized mapping from opaque tokens to usernames. Sessions are
// created on successful login, destroyed on logout, and die with the
// process — there is no persistence and no expiry timer.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "inkwell_session"

	// tokenLength is the byte length of the random session token
	// (32 bytes = 256 bits of entropy, 64 hex chars).
	tokenLength = 32
)

// ErrInvalidCredentials is returned by Login when the username/credential
// pair does not check out. It maps to an authentication challenge at the
// request boundary, never a crash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialChecker verifies a username/credential pair against an
// external principal source. The authority treats it as an injected
// capability and never inspects credentials itself.
type CredentialChecker interface {
	Check(username, credential string) (bool, error)
}

// Authority owns the session lifecycle. It is safe for concurrent use
// from multiple request-handling goroutines; the map carries its own
// synchronization and needs no external locking.
type Authority struct {
	mu       sync.RWMutex
	sessions map[string]string // token → username
	creds    CredentialChecker
}

// NewAuthority creates a session authority using the given credential
// checker.
func NewAuthority(creds CredentialChecker) *Authority {
	return &Authority{
		sessions: make(map[string]string),
		creds:    creds,
	}
}

// Login verifies the credential and, on success, mints a cryptographically
// random token mapped to the username. Failed verification returns
// ErrInvalidCredentials.
func (a *Authority) Login(username, credential string) (string, error) {
	ok, err := a.creds.Check(username, credential)
	if err != nil {
		return "", fmt.Errorf("credential check: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}

	a.mu.Lock()
	a.sessions[token] = username
	a.mu.Unlock()

	return token, nil
}

// Authenticate resolves a token to its username. Pure lookup, no side
// effects. The second return is false for unknown or logged-out tokens.
func (a *Authority) Authenticate(token string) (string, bool) {
	a.mu.RLock()
	username, ok := a.sessions[token]
	a.mu.RUnlock()
	return username, ok
}

// Logout removes the token's session. Idempotent: logging out an unknown
// or already removed token is a no-op.
func (a *Authority) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// SetCookie attaches the session token to the response.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie immediately.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns "" when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// generateToken creates a cryptographically random session identifier.
func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
