// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/markdown"
	"folio/internal/meta"
	"folio/internal/models"
	"folio/internal/slug"
	"folio/internal/store"
)

// pageSize is the public listing page size.
const pageSize = 20

// featuredLimit caps the featured endpoints.
const featuredLimit = 6

// Posts groups blog post HTTP handlers.
type Posts struct {
	posts     *store.PostStore
	comments  *store.CommentStore
	tags      *store.TagStore
	respCache *cache.ResponseCache
}

// NewPosts creates a new Posts handler group. respCache may be nil when
// Valkey is not configured.
func NewPosts(posts *store.PostStore, comments *store.CommentStore, tags *store.TagStore, respCache *cache.ResponseCache) *Posts {
	return &Posts{
		posts:     posts,
		comments:  comments,
		tags:      tags,
		respCache: respCache,
	}
}

type postRequest struct {
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Body            string     `json:"body"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	CategoryID      *uuid.UUID `json:"category_id"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	Tags            []string   `json:"tags"`
}

// listResponse is the paginated listing envelope.
type listResponse struct {
	Results any `json:"results"`
	Page    int `json:"page"`
}

// postDetail is the public detail projection: the post plus rendered
// body HTML and its approved comments.
type postDetail struct {
	*models.Post
	BodyHTML string                 `json:"body_html"`
	Comments []models.PublicComment `json:"comments"`
}

// List returns published posts, filtered by category slug, tag, and
// search term. Filters combine with AND.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	filters := store.PostFilters{
		CategorySlug: r.URL.Query().Get("category"),
		Tag:          r.URL.Query().Get("tag"),
		Search:       r.URL.Query().Get("search"),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}

	cacheKey := "posts:" + r.URL.RawQuery
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	posts, err := h.posts.ListPublished(filters)
	if err != nil {
		serverError(w, r, "list posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondAndCache(w, r, h.respCache, cacheKey, listResponse{Results: posts, Page: page})
}

// Featured returns the most recent featured published posts, capped at
// six entries.
func (h *Posts) Featured(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "posts:featured"
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	posts, err := h.posts.ListFeatured(featuredLimit)
	if err != nil {
		serverError(w, r, "list featured posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondAndCache(w, r, h.respCache, cacheKey, posts)
}

// Get returns a published post by slug with rendered HTML and approved
// comments, counting the view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindPublishedBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, r, http.StatusNotFound, "post not found")
		return
	}

	views, err := h.posts.IncrementViewCount(post.ID)
	if err != nil {
		serverError(w, r, "view count increment failed", err)
		return
	}
	post.ViewCount = views

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		serverError(w, r, "markdown render failed", err)
		return
	}

	comments, err := h.comments.ListApprovedByPost(post.ID)
	if err != nil {
		serverError(w, r, "list comments failed", err)
		return
	}
	public := make([]models.PublicComment, 0, len(comments))
	for i := range comments {
		public = append(public, comments[i].Public())
	}

	respond(w, r, http.StatusOK, postDetail{Post: post, BodyHTML: bodyHTML, Comments: public})
}

// Create inserts a new post owned by the caller. The slug is derived
// from the title with a numeric suffix on collision.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return
	}

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContent(req.Title, req.Body, req.Excerpt); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}
	status, ok := parseStatus(w, r, req.Status)
	if !ok {
		return
	}

	postSlug, err := slug.Unique(req.Title, func(candidate string) (bool, error) {
		return h.posts.SlugExists(candidate, uuid.Nil)
	})
	if err != nil {
		serverError(w, r, "slug generation failed", err)
		return
	}

	now := time.Now()
	post := &models.Post{
		Title:           strings.TrimSpace(req.Title),
		Slug:            postSlug,
		Excerpt:         req.Excerpt,
		Body:            req.Body,
		MetaTitle:       meta.Title(req.MetaTitle, req.Title),
		MetaDescription: meta.Description(req.MetaDescription, req.Excerpt),
		FeaturedImageID: req.FeaturedImageID,
		AuthorID:        callerID,
		CategoryID:      req.CategoryID,
		Status:          status,
		Featured:        req.Featured,
		ReadingTime:     meta.ReadingTime(req.Body),
		PublishedAt:     models.NextPublishedAt(status, nil, now),
	}

	created, err := h.posts.Create(post)
	if err != nil {
		if store.IsUniqueViolation(err) {
			respondError(w, r, http.StatusConflict, "slug already in use")
			return
		}
		serverError(w, r, "create post failed", err)
		return
	}

	if req.Tags != nil {
		if err := h.applyTags(created, req.Tags); err != nil {
			serverError(w, r, "apply tags failed", err)
			return
		}
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusCreated, created)
}

// Update modifies a post. Only the author may write; the slug never
// changes once assigned.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownedPost(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContent(req.Title, req.Body, req.Excerpt); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}
	status, ok := parseStatus(w, r, req.Status)
	if !ok {
		return
	}

	now := time.Now()
	post.Title = strings.TrimSpace(req.Title)
	post.Excerpt = req.Excerpt
	post.Body = req.Body
	post.MetaTitle = meta.Title(req.MetaTitle, req.Title)
	post.MetaDescription = meta.Description(req.MetaDescription, req.Excerpt)
	post.FeaturedImageID = req.FeaturedImageID
	post.CategoryID = req.CategoryID
	post.Status = status
	post.Featured = req.Featured
	post.ReadingTime = meta.ReadingTime(req.Body)
	post.PublishedAt = models.NextPublishedAt(status, post.PublishedAt, now)

	if err := h.posts.Update(post); err != nil {
		serverError(w, r, "update post failed", err)
		return
	}

	if req.Tags != nil {
		if err := h.applyTags(post, req.Tags); err != nil {
			serverError(w, r, "apply tags failed", err)
			return
		}
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, post)
}

// Delete removes a post. Only the author may delete; comments cascade.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownedPost(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(post.ID); err != nil {
		serverError(w, r, "delete post failed", err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ownedPost loads the post named in the URL and enforces that the
// caller is its author.
func (h *Posts) ownedPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	callerID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return nil, false
	}

	post, err := h.posts.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find post failed", err)
		return nil, false
	}
	if post == nil {
		respondError(w, r, http.StatusNotFound, "post not found")
		return nil, false
	}
	if post.AuthorID != callerID {
		respondError(w, r, http.StatusForbidden, "you do not own this post")
		return nil, false
	}
	return post, true
}

// applyTags resolves tag names to rows (creating missing ones) and
// replaces the post's associations. The post's Tags field is refreshed
// in place.
func (h *Posts) applyTags(post *models.Post, names []string) error {
	var ids []uuid.UUID
	post.Tags = nil
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := h.tags.FindOrCreate(name, slug.Generate(name))
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
		post.Tags = append(post.Tags, *tag)
	}
	return h.posts.SetTags(post.ID, ids)
}

// parsePage reads the ?page= query parameter, defaulting to 1.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseStatus validates the requested publishing status, defaulting to
// draft when empty.
func parseStatus(w http.ResponseWriter, r *http.Request, raw string) (models.Status, bool) {
	if raw == "" {
		return models.StatusDraft, true
	}
	status := models.Status(raw)
	if !status.Valid() {
		respondError(w, r, http.StatusBadRequest, "status must be draft, published, or archived")
		return "", false
	}
	return status, true
}
