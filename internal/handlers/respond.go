// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface: JSON encoding, request
// decoding and the mapping from domain errors to status codes. Handlers
// stay thin; all domain rules live in the packages they call.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/lifecycle"
	"inkwell/internal/seo"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondDomainError maps domain errors onto HTTP status codes:
// readiness failures and bad input 422, slug conflicts 409, missing rows
// 404, bad credentials 401, everything else 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *seo.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   verr.Error(),
			"missing": verr.Missing,
		})
	case errors.Is(err, lifecycle.ErrInvalidStatus):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, session.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
