// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/session"
)

// Auth groups the login and logout handlers.
type Auth struct {
	sessions *session.Authority
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Authority) *Auth {
	return &Auth{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session cookie.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := a.sessions.Login(req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	session.SetCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]string{"username": req.Username})
}

// Logout destroys the session and clears the cookie. Idempotent: a
// request without a valid session still gets a 204.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if token := session.TokenFromRequest(r); token != "" {
		a.sessions.Logout(token)
	}
	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
