// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analytics records lightweight usage events and aggregates them
// for the admin dashboard. The event log is append-only: there is no
// update or delete path.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// EventPageview is the event type recorded for public page reads.
const EventPageview = "pageview"

// Recorder owns the analytics_events relation.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder on the given database connection.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one immutable event. Recording is fire-and-forget from
// the caller's perspective: failures are logged and swallowed so a broken
// analytics write can never fail the page that triggered it.
func (r *Recorder) Record(ctx context.Context, path, eventType string, postID *uuid.UUID, value int) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analytics_events (post_id, path, event_type, value)
		VALUES ($1, $2, $3, $4)
	`, postID, path, eventType, value)
	if err != nil {
		slog.Warn("analytics record failed",
			"path", path,
			"event_type", eventType,
			"error", err,
		)
	}
}

// TopPosts aggregates pageview events per post, descending by view count.
// Ties break on the most recent event among the tied posts, which keeps
// the ordering deterministic.
func (r *Recorder) TopPosts(ctx context.Context, limit int) ([]models.TopPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.title, COUNT(a.id) AS views
		FROM analytics_events a
		JOIN posts p ON p.id = a.post_id
		WHERE a.event_type = $1
		GROUP BY p.id, p.title
		ORDER BY views DESC, MAX(a.created_at) DESC
		LIMIT $2
	`, EventPageview, limit)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	defer rows.Close()

	var top []models.TopPost
	for rows.Next() {
		var tp models.TopPost
		if err := rows.Scan(&tp.Title, &tp.Views); err != nil {
			return nil, fmt.Errorf("scan top post: %w", err)
		}
		top = append(top, tp)
	}
	return top, rows.Err()
}

// TotalPageviews returns the number of pageview events over the whole log.
func (r *Recorder) TotalPageviews(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM analytics_events WHERE event_type = $1
	`, EventPageview).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total pageviews: %w", err)
	}
	return total, nil
}
