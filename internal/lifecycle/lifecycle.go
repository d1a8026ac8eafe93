// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package lifecycle owns the post write path: normalization of incoming
// payloads, the publish-readiness gate, persistence, tag association and
// read-cache invalidation. Every post create and update in the system
// flows through Manager.Save.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/seo"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// ErrInvalidStatus is returned when the target status is neither draft
// nor published.
var ErrInvalidStatus = errors.New("invalid post status")

// SaveRequest is the editor's payload for creating or updating a post.
// ID is nil for creates. Empty optional fields are filled with derived
// defaults during normalization.
type SaveRequest struct {
	ID               *uuid.UUID
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	CategoryID       *uuid.UUID
	FeaturedImage    *string
	FeaturedImageAlt string
	MetaTitle        string
	MetaDescription  string
	CanonicalURL     string
	SEOKeyword       string
	AuthorName       string
	TagIDs           []uuid.UUID
}

// Manager coordinates post writes. The cache is optional; a nil cache
// disables invalidation without changing any other behavior.
type Manager struct {
	posts   *store.PostStore
	cache   *cache.ReadCache
	baseURL string
}

// NewManager creates a lifecycle manager. baseURL is the public site
// origin used for canonical URL defaults, without a trailing slash.
func NewManager(posts *store.PostStore, rc *cache.ReadCache, baseURL string) *Manager {
	return &Manager{posts: posts, cache: rc, baseURL: baseURL}
}

// Save creates or updates a post, targeting the given status.
//
// Normalization runs first, so a payload can publish on the strength of
// its derived defaults: a blank meta_description is filled from the
// excerpt before the gate ever sees it. When the target is published,
// the readiness gate then runs against the normalized field set; a
// failing gate returns *seo.ValidationError and guarantees nothing was
// written.
//
// Slug conflicts surface as store.ErrConflict unchanged; there is no
// automatic suffixing. Updates of unknown ids return store.ErrNotFound.
func (m *Manager) Save(ctx context.Context, req SaveRequest, targetStatus models.PostStatus) (*models.Post, error) {
	if !targetStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, targetStatus)
	}

	post := m.normalize(req, targetStatus)

	if targetStatus == models.PostStatusPublished {
		missing := seo.Check(seo.Payload{
			Title:            post.Title,
			Content:          post.Content,
			MetaTitle:        post.MetaTitle,
			MetaDescription:  post.MetaDescription,
			FeaturedImageAlt: post.FeaturedImageAlt,
		})
		if len(missing) > 0 {
			return nil, &seo.ValidationError{Missing: missing}
		}
	}

	var prevSlug string
	if req.ID != nil {
		if prev, err := m.posts.FindByID(*req.ID); err == nil && prev != nil {
			prevSlug = prev.Slug
		}
		post.ID = *req.ID
	}

	var (
		saved *models.Post
		err   error
	)
	if req.ID == nil {
		saved, err = m.posts.Create(post)
	} else {
		saved, err = m.posts.Update(post)
	}
	if err != nil {
		return nil, err
	}

	if err := m.posts.ReplaceTags(saved.ID, req.TagIDs); err != nil {
		return nil, err
	}
	tags, err := m.posts.TagsFor(saved.ID)
	if err != nil {
		return nil, err
	}
	saved.Tags = tags

	m.invalidate(ctx, prevSlug, saved.Slug)
	return saved, nil
}

// Delete removes a post and drops its cache entries. Unknown ids are a
// no-op, matching the store.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	prev, err := m.posts.FindByID(id)
	if err != nil {
		return err
	}
	if err := m.posts.Delete(id); err != nil {
		return err
	}
	if prev != nil {
		m.invalidate(ctx, prev.Slug, "")
	}
	return nil
}

// normalize derives the persisted field set from the request: the slug
// from the explicit slug else the title, the excerpt and read time from
// the content, and metadata fallbacks for the remaining blanks.
func (m *Manager) normalize(req SaveRequest, targetStatus models.PostStatus) *models.Post {
	postSlug := slug.Generate(req.Slug)
	if req.Slug == "" {
		postSlug = slug.Generate(req.Title)
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = seo.Excerpt(req.Content)
	}
	metaTitle := req.MetaTitle
	if metaTitle == "" {
		metaTitle = req.Title
	}
	metaDescription := req.MetaDescription
	if metaDescription == "" {
		metaDescription = excerpt
	}
	imageAlt := req.FeaturedImageAlt
	if imageAlt == "" {
		imageAlt = req.Title
	}
	canonical := req.CanonicalURL
	if canonical == "" {
		canonical = m.baseURL + "/posts/" + postSlug
	}

	return &models.Post{
		Title:            req.Title,
		Slug:             postSlug,
		Content:          req.Content,
		Excerpt:          excerpt,
		Status:           targetStatus,
		CategoryID:       req.CategoryID,
		FeaturedImage:    req.FeaturedImage,
		FeaturedImageAlt: imageAlt,
		MetaTitle:        metaTitle,
		MetaDescription:  metaDescription,
		CanonicalURL:     canonical,
		SEOKeyword:       req.SEOKeyword,
		ReadTime:         seo.ReadingTime(req.Content),
		AuthorName:       req.AuthorName,
	}
}

// invalidate drops the affected cache entries. Listings are always
// cleared because any save can reorder or re-filter them.
func (m *Manager) invalidate(ctx context.Context, prevSlug, newSlug string) {
	if m.cache == nil {
		return
	}
	if prevSlug != "" && prevSlug != newSlug {
		m.cache.InvalidatePost(ctx, prevSlug)
	}
	if newSlug != "" {
		m.cache.InvalidatePost(ctx, newSlug)
	}
	m.cache.InvalidateLists(ctx)
}
