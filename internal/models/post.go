// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is one of the known post statuses.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a blog post with its SEO metadata and derived fields.
// PublishedAt is set on the first transition to published and never
// cleared or moved afterwards, even if the post is reverted to draft.
type Post struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Content          string     `json:"content"`
	Excerpt          string     `json:"excerpt"`
	Status           PostStatus `json:"status"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	FeaturedImage    *string    `json:"featured_image,omitempty"`
	FeaturedImageAlt string     `json:"featured_image_alt"`
	MetaTitle        string     `json:"meta_title"`
	MetaDescription  string     `json:"meta_description"`
	CanonicalURL     string     `json:"canonical_url"`
	SEOKeyword       string     `json:"seo_keyword"`
	ReadTime         int        `json:"read_time"`
	AuthorName       string     `json:"author_name"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`

	// Virtual fields populated by store methods.
	CategoryName string `json:"category_name,omitempty"`
	Tags         []Tag  `json:"tags,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
