// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// TagStore manages tags in the database.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name, slug, created_at`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tags ordered by name.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`SELECT ` + tagColumns + ` FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(tagSlug string) (*models.Tag, error) {
	row := s.db.QueryRow(`SELECT `+tagColumns+` FROM tags WHERE slug = $1`, tagSlug)
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return t, nil
}

// Upsert inserts a tag by name with its derived slug, or returns the
// existing row when the name is already taken.
func (s *TagStore) Upsert(name string) (*models.Tag, error) {
	row := s.db.QueryRow(`
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING `+tagColumns,
		name, slug.Generate(name),
	)
	t, err := scanTag(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("upsert tag %q: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}
	return t, nil
}

// Delete removes a tag by id. Associations cascade in the schema.
func (s *TagStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
