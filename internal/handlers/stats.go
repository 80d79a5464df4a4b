// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"folio/internal/models"
	"folio/internal/store"
)

// topViewedLimit caps the most-viewed list in the stats payload. The
// cap is pushed into SQL so it bounds the query, not just the response.
const topViewedLimit = 5

// Stats serves the authenticated dashboard summary.
type Stats struct {
	posts    *store.PostStore
	projects *store.ProjectStore
	comments *store.CommentStore
}

// NewStats creates a new Stats handler group.
func NewStats(posts *store.PostStore, projects *store.ProjectStore, comments *store.CommentStore) *Stats {
	return &Stats{posts: posts, projects: projects, comments: comments}
}

type statsResponse struct {
	PublishedPosts    int           `json:"published_posts"`
	DraftPosts        int           `json:"draft_posts"`
	PublishedProjects int           `json:"published_projects"`
	DraftProjects     int           `json:"draft_projects"`
	PendingComments   int           `json:"pending_comments"`
	TopViewed         []models.Post `json:"top_viewed"`
}

// Summary returns content counts and the five most viewed posts.
func (h *Stats) Summary(w http.ResponseWriter, r *http.Request) {
	var (
		resp statsResponse
		err  error
	)

	if resp.PublishedPosts, err = h.posts.CountByStatus(models.StatusPublished); err != nil {
		serverError(w, r, "count posts failed", err)
		return
	}
	if resp.DraftPosts, err = h.posts.CountByStatus(models.StatusDraft); err != nil {
		serverError(w, r, "count posts failed", err)
		return
	}
	if resp.PublishedProjects, err = h.projects.CountByStatus(models.StatusPublished); err != nil {
		serverError(w, r, "count projects failed", err)
		return
	}
	if resp.DraftProjects, err = h.projects.CountByStatus(models.StatusDraft); err != nil {
		serverError(w, r, "count projects failed", err)
		return
	}
	if resp.PendingComments, err = h.comments.CountPending(); err != nil {
		serverError(w, r, "count comments failed", err)
		return
	}

	top, err := h.posts.TopViewed(topViewedLimit)
	if err != nil {
		serverError(w, r, "top viewed failed", err)
		return
	}
	if top == nil {
		top = []models.Post{}
	}
	resp.TopViewed = top

	respond(w, r, http.StatusOK, resp)
}
