// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/store"
)

// Comments groups reader comment submission and moderation handlers.
type Comments struct {
	comments  *store.CommentStore
	posts     *store.PostStore
	respCache *cache.ResponseCache
}

// NewComments creates a new Comments handler group.
func NewComments(comments *store.CommentStore, posts *store.PostStore, respCache *cache.ResponseCache) *Comments {
	return &Comments{comments: comments, posts: posts, respCache: respCache}
}

type commentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// Submit accepts an anonymous comment on a published post. The comment
// enters the moderation queue; the response never includes the email.
func (h *Comments) Submit(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindPublishedBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, r, http.StatusNotFound, "post not found")
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateComment(req.Name, req.Email, req.Content); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	comment, err := h.comments.Create(post.ID,
		strings.TrimSpace(req.Name),
		strings.ToLower(strings.TrimSpace(req.Email)),
		strings.TrimSpace(req.Content))
	if err != nil {
		serverError(w, r, "create comment failed", err)
		return
	}

	slog.Info("comment submitted", "post", post.Slug, "comment_id", comment.ID)
	respond(w, r, http.StatusCreated, comment.Public())
}

// ListForPost returns a post's approved comments, newest first.
func (h *Comments) ListForPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindPublishedBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, r, http.StatusNotFound, "post not found")
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
	respond(w, r, http.StatusOK, public)
}

// Pending returns the moderation queue: all unapproved comments, with
// author emails visible to the authenticated moderator.
func (h *Comments) Pending(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListPending()
	if err != nil {
		serverError(w, r, "list pending comments failed", err)
		return
	}

	// The moderation view includes the email, so project explicitly
	// rather than relying on the model's public serialization.
	type moderationComment struct {
		ID          uuid.UUID `json:"id"`
		PostID      uuid.UUID `json:"post_id"`
		AuthorName  string    `json:"author_name"`
		AuthorEmail string    `json:"author_email"`
		Content     string    `json:"content"`
		CreatedAt   string    `json:"created_at"`
	}
	queue := make([]moderationComment, 0, len(comments))
	for _, c := range comments {
		queue = append(queue, moderationComment{
			ID:          c.ID,
			PostID:      c.PostID,
			AuthorName:  c.AuthorName,
			AuthorEmail: c.AuthorEmail,
			Content:     c.Body,
			CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respond(w, r, http.StatusOK, queue)
}

type moderationRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// Approve marks a batch of comments as publicly visible. Re-approving
// an already approved comment is a no-op.
func (h *Comments) Approve(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, true)
}

// Disapprove returns a batch of comments to the moderation queue.
func (h *Comments) Disapprove(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, false)
}

func (h *Comments) setApproved(w http.ResponseWriter, r *http.Request, approved bool) {
	var req moderationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		respondError(w, r, http.StatusBadRequest, "ids is required")
		return
	}

	n, err := h.comments.SetApproved(req.IDs, approved)
	if err != nil {
		serverError(w, r, "moderate comments failed", err)
		return
	}

	// Cached list payloads embed approved-comment counts.
	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, map[string]int{"updated": n})
}

// Delete removes a comment permanently.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := h.comments.FindByID(id)
	if err != nil {
		serverError(w, r, "find comment failed", err)
		return
	}
	if comment == nil {
		respondError(w, r, http.StatusNotFound, "comment not found")
		return
	}

	if err := h.comments.Delete(id); err != nil {
		serverError(w, r, "delete comment failed", err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
