// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations, including the
// post_tags association. Conflicting writes to the same post serialize on
// the database's row locks; there is no store-level mutex.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.status,
       p.category_id, p.featured_image, p.featured_image_alt,
       p.meta_title, p.meta_description, p.canonical_url, p.seo_keyword,
       p.read_time, p.author_name, p.created_at, p.updated_at, p.published_at`

// returningColumns is postColumns without the table alias, for RETURNING.
const returningColumns = `id, title, slug, content, excerpt, status,
       category_id, featured_image, featured_image_alt,
       meta_title, meta_description, canonical_url, seo_keyword,
       read_time, author_name, created_at, updated_at, published_at`

// scanPost scans a bare posts row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Status,
		&p.CategoryID, &p.FeaturedImage, &p.FeaturedImageAlt,
		&p.MetaTitle, &p.MetaDescription, &p.CanonicalURL, &p.SEOKeyword,
		&p.ReadTime, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post and returns it with generated id and
// timestamps. published_at is set iff the post is created already
// published. A duplicate slug surfaces ErrConflict; the unique index makes
// the check-then-insert atomic.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, status, category_id,
		                   featured_image, featured_image_alt, meta_title,
		                   meta_description, canonical_url, seo_keyword,
		                   read_time, author_name, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        CASE WHEN $5 = 'published' THEN now() END)
		RETURNING `+returningColumns,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Status, p.CategoryID,
		p.FeaturedImage, p.FeaturedImageAlt, p.MetaTitle,
		p.MetaDescription, p.CanonicalURL, p.SEOKeyword,
		p.ReadTime, p.AuthorName,
	)
	result, err := scanPost(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create post: slug %q: %w", p.Slug, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. updated_at is refreshed on every call.
// published_at is COALESCEd: it is set exactly once, on the first
// transition to published, and never cleared or moved by later edits.
// Returns ErrNotFound when the id does not exist and ErrConflict when the
// new slug collides with another post.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, status = $5,
			category_id = $6, featured_image = $7, featured_image_alt = $8,
			meta_title = $9, meta_description = $10, canonical_url = $11,
			seo_keyword = $12, read_time = $13, author_name = $14,
			updated_at = now(),
			published_at = COALESCE(published_at,
				CASE WHEN $5 = 'published' THEN now() END)
		WHERE id = $15
		RETURNING `+returningColumns,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Status, p.CategoryID,
		p.FeaturedImage, p.FeaturedImageAlt, p.MetaTitle,
		p.MetaDescription, p.CanonicalURL, p.SEOKeyword,
		p.ReadTime, p.AuthorName, p.ID,
	)
	result, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update post %s: %w", p.ID, ErrNotFound)
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("update post: slug %q: %w", p.Slug, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// FindByID retrieves a post by id regardless of status (admin lookup).
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published post by slug with its category name.
// Drafts are invisible here; returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`, c.name
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 AND p.status = 'published'
	`, slug)

	var p models.Post
	var categoryName sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Status,
		&p.CategoryID, &p.FeaturedImage, &p.FeaturedImageAlt,
		&p.MetaTitle, &p.MetaDescription, &p.CanonicalURL, &p.SEOKeyword,
		&p.ReadTime, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
		&categoryName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	p.CategoryName = categoryName.String
	return &p, nil
}

// ListPublished returns published posts, newest first by published_at with
// id as the deterministic tie-break. When search is non-empty it filters
// with a case-insensitive substring match over title and content.
func (s *PostStore) ListPublished(search string) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `, c.name
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published'`
	args := []any{}
	if search != "" {
		query += ` AND (p.title ILIKE $1 OR p.content ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY p.published_at DESC, p.id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ListByCategorySlug returns published posts in the category with the
// given slug, newest first.
func (s *PostStore) ListByCategorySlug(slug string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`, c.name
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published' AND c.slug = $1
		ORDER BY p.published_at DESC, p.id DESC
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ListByTagSlug returns published posts carrying the tag with the given
// slug, newest first.
func (s *PostStore) ListByTagSlug(slug string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`, c.name
		FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		JOIN tags t ON t.id = pt.tag_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published' AND t.slug = $1
		ORDER BY p.published_at DESC, p.id DESC
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ListAll returns every post regardless of status for the admin panel,
// most recently updated first.
func (s *PostStore) ListAll() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `, c.name
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.updated_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ReplaceTags clears and rewrites the post's tag associations in one
// transaction, so readers never observe a partially written set. Tag ids
// that do not exist in the tags relation are silently ignored: the insert
// joins against tags, mirroring an idempotent upsert of valid pairs only.
func (s *PostStore) ReplaceTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace tags: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("replace tags: clear: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id)
			SELECT $1, id FROM tags WHERE id = $2
			ON CONFLICT (post_id, tag_id) DO NOTHING
		`, postID, tagID)
		if err != nil {
			return fmt.Errorf("replace tags: insert %s: %w", tagID, err)
		}
	}

	return tx.Commit()
}

// TagsFor returns the tags associated with a post, ordered by name.
func (s *PostStore) TagsFor(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("tags for post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Delete removes a post by id. Associations cascade in the schema.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// collectJoined scans rows produced by the post+category-name queries.
func collectJoined(rows *sql.Rows) ([]models.Post, error) {
	var items []models.Post
	for rows.Next() {
		var p models.Post
		var categoryName sql.NullString
		err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Status,
			&p.CategoryID, &p.FeaturedImage, &p.FeaturedImageAlt,
			&p.MetaTitle, &p.MetaDescription, &p.CanonicalURL, &p.SEOKeyword,
			&p.ReadTime, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
			&categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.CategoryName = categoryName.String
		items = append(items, p)
	}
	return items, rows.Err()
}
