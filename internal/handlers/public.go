// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/analytics"
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Public groups the handlers for the public read surface. Reads consult
// the Valkey read cache before hitting the database and record a pageview
// event as a side effect; both the cache and the recorder may be nil.
type Public struct {
	db         *sql.DB
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	recorder   *analytics.Recorder
	readCache  *cache.ReadCache
}

// NewPublic creates a new Public handler group.
func NewPublic(db *sql.DB, posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, recorder *analytics.Recorder, readCache *cache.ReadCache) *Public {
	return &Public{
		db:         db,
		posts:      posts,
		categories: categories,
		tags:       tags,
		recorder:   recorder,
		readCache:  readCache,
	}
}

// Home lists published posts, newest first, optionally filtered by the
// ?q= search parameter.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	search := r.URL.Query().Get("q")

	p.record(ctx, r.URL.Path, nil)

	key := cache.ListKey("home", search)
	if p.serveCached(ctx, w, key) {
		return
	}

	posts, err := p.posts.ListPublished(search)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	p.respondCaching(ctx, w, key, listPayload(posts))
}

// Post serves a single published post by slug, with category name and
// tags. Drafts are indistinguishable from absent posts.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	key := cache.PostKey(slugParam)
	if p.readCache != nil {
		if cached, ok := p.readCache.Get(ctx, key); ok {
			p.recordCachedPost(ctx, r.URL.Path, cached)
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}
	}

	post, err := p.posts.FindBySlug(slugParam)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	tags, err := p.posts.TagsFor(post.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	post.Tags = tags

	p.record(ctx, r.URL.Path, &post.ID)
	p.respondCaching(ctx, w, key, post)
}

// Category lists published posts in a category, 404 for unknown slugs.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	p.record(ctx, r.URL.Path, nil)

	cat, err := p.categories.FindBySlug(slugParam)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if cat == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	key := cache.ListKey("category", slugParam)
	if p.serveCached(ctx, w, key) {
		return
	}

	posts, err := p.posts.ListByCategorySlug(slugParam)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	p.respondCaching(ctx, w, key, map[string]any{
		"category": cat,
		"posts":    listPayload(posts),
	})
}

// Tag lists published posts carrying a tag, 404 for unknown slugs.
func (p *Public) Tag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	p.record(ctx, r.URL.Path, nil)

	tag, err := p.tags.FindBySlug(slugParam)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if tag == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	key := cache.ListKey("tag", slugParam)
	if p.serveCached(ctx, w, key) {
		return
	}

	posts, err := p.posts.ListByTagSlug(slugParam)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	p.respondCaching(ctx, w, key, map[string]any{
		"tag":   tag,
		"posts": listPayload(posts),
	})
}

// Health reports process and database liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	if err := p.db.PingContext(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// record emits a pageview event when a recorder is configured. Pageviews
// carry a zero value; the event row itself is the unit of counting.
func (p *Public) record(ctx context.Context, path string, postID *uuid.UUID) {
	if p.recorder != nil {
		p.recorder.Record(ctx, path, analytics.EventPageview, postID, 0)
	}
}

// recordCachedPost attributes a cache-hit pageview to its post by reading
// the id back out of the cached payload.
func (p *Public) recordCachedPost(ctx context.Context, path string, cached []byte) {
	var envelope struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(cached, &envelope); err != nil || envelope.ID == uuid.Nil {
		p.record(ctx, path, nil)
		return
	}
	p.record(ctx, path, &envelope.ID)
}

// serveCached writes the cached payload when present.
func (p *Public) serveCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	if p.readCache == nil {
		return false
	}
	cached, ok := p.readCache.Get(ctx, key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(cached)
	return true
}

// respondCaching encodes v once, stores the bytes under key and writes
// them as the response.
func (p *Public) respondCaching(ctx context.Context, w http.ResponseWriter, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode payload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if p.readCache != nil {
		p.readCache.Set(ctx, key, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// listPayload keeps listing responses a JSON array even when empty.
func listPayload(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
