// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/analytics"
	"inkwell/internal/lifecycle"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Admin groups the session-protected management handlers. All post writes
// go through the lifecycle manager; the stores are used for reads and for
// the category/tag vocabulary.
type Admin struct {
	manager    *lifecycle.Manager
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	recorder   *analytics.Recorder
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(manager *lifecycle.Manager, posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, recorder *analytics.Recorder) *Admin {
	return &Admin{
		manager:    manager,
		posts:      posts,
		categories: categories,
		tags:       tags,
		recorder:   recorder,
	}
}

// savePostRequest is the JSON payload for post creates and updates.
type savePostRequest struct {
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Content          string      `json:"content"`
	Excerpt          string      `json:"excerpt"`
	Status           string      `json:"status"`
	CategoryID       *uuid.UUID  `json:"category_id"`
	FeaturedImage    *string     `json:"featured_image"`
	FeaturedImageAlt string      `json:"featured_image_alt"`
	MetaTitle        string      `json:"meta_title"`
	MetaDescription  string      `json:"meta_description"`
	CanonicalURL     string      `json:"canonical_url"`
	SEOKeyword       string      `json:"seo_keyword"`
	AuthorName       string      `json:"author_name"`
	TagIDs           []uuid.UUID `json:"tag_ids"`
}

func (req *savePostRequest) toSave(id *uuid.UUID) (lifecycle.SaveRequest, models.PostStatus) {
	status := models.PostStatus(req.Status)
	if req.Status == "" {
		status = models.PostStatusDraft
	}
	return lifecycle.SaveRequest{
		ID:               id,
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		CategoryID:       req.CategoryID,
		FeaturedImage:    req.FeaturedImage,
		FeaturedImageAlt: req.FeaturedImageAlt,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		CanonicalURL:     req.CanonicalURL,
		SEOKeyword:       req.SEOKeyword,
		AuthorName:       req.AuthorName,
		TagIDs:           req.TagIDs,
	}, status
}

// ListPosts returns every post regardless of status, most recently
// updated first.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listPayload(posts))
}

// CreatePost creates a post through the lifecycle manager.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req savePostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	save, status := req.toSave(nil)
	post, err := a.manager.Save(r.Context(), save, status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// UpdatePost updates an existing post through the lifecycle manager.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req savePostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	save, status := req.toSave(&id)
	post, err := a.manager.Save(r.Context(), save, status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePost removes a post and its cache entries.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.manager.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type nameRequest struct {
	Name string `json:"name"`
}

// ListCategories returns all categories with published post counts.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory upserts a category by name; repeating a name returns the
// existing row rather than an error.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	category, err := a.categories.Upsert(req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// ListTags returns the tag vocabulary ordered by name.
func (a *Admin) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.tags.List()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	respondJSON(w, http.StatusOK, tags)
}

// CreateTag upserts a tag by name.
func (a *Admin) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	tag, err := a.tags.Upsert(req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tag)
}

// Analytics returns the dashboard payload: the top ten posts by pageviews
// and the all-time pageview total.
func (a *Admin) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	top, err := a.recorder.TopPosts(ctx, 10)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if top == nil {
		top = []models.TopPost{}
	}

	total, err := a.recorder.TotalPageviews(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"top_posts":       top,
		"total_pageviews": total,
	})
}
