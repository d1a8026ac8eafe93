// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an editor account consulted by the session authority's
// credential check.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"created_at"`
}

// TopPost is an aggregated analytics row: a post title with its pageview
// count over the whole event log.
type TopPost struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}
