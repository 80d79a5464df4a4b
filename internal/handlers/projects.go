// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
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

// Projects groups portfolio project HTTP handlers.
type Projects struct {
	projects     *store.ProjectStore
	technologies *store.TechnologyStore
	respCache    *cache.ResponseCache
}

// NewProjects creates a new Projects handler group. respCache may be nil
// when Valkey is not configured.
func NewProjects(projects *store.ProjectStore, technologies *store.TechnologyStore, respCache *cache.ResponseCache) *Projects {
	return &Projects{
		projects:     projects,
		technologies: technologies,
		respCache:    respCache,
	}
}

type projectRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DetailedBody    string     `json:"detailed_description"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id"`
	DemoURL         string     `json:"demo_url"`
	SourceURL       string     `json:"source_url"`
	CategoryID      *uuid.UUID `json:"category_id"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	Technologies    []string   `json:"technologies"`
}

// projectDetail is the public detail projection with rendered HTML for
// the long-form write-up.
type projectDetail struct {
	*models.Project
	DetailedHTML string `json:"detailed_description_html"`
}

// List returns published projects, filtered by category slug,
// technology, and search term. Filters combine with AND.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	filters := store.ProjectFilters{
		CategorySlug: r.URL.Query().Get("category"),
		Technology:   r.URL.Query().Get("technology"),
		Search:       r.URL.Query().Get("search"),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}

	cacheKey := "projects:" + r.URL.RawQuery
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	projects, err := h.projects.ListPublished(filters)
	if err != nil {
		serverError(w, r, "list projects failed", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	respondAndCache(w, r, h.respCache, cacheKey, listResponse{Results: projects, Page: page})
}

// Featured returns the most recent featured published projects, capped
// at six entries.
func (h *Projects) Featured(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "projects:featured"
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	projects, err := h.projects.ListFeatured(featuredLimit)
	if err != nil {
		serverError(w, r, "list featured projects failed", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	respondAndCache(w, r, h.respCache, cacheKey, projects)
}

// Get returns a published project by slug with rendered HTML, counting
// the view.
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.FindPublishedBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, r, http.StatusNotFound, "project not found")
		return
	}

	views, err := h.projects.IncrementViewCount(project.ID)
	if err != nil {
		serverError(w, r, "view count increment failed", err)
		return
	}
	project.ViewCount = views

	detailedHTML, err := markdown.ToHTML(project.DetailedBody)
	if err != nil {
		serverError(w, r, "markdown render failed", err)
		return
	}

	respond(w, r, http.StatusOK, projectDetail{Project: project, DetailedHTML: detailedHTML})
}

// Create inserts a new project owned by the caller.
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContent(req.Title, req.DetailedBody, req.Description); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}
	status, ok := parseStatus(w, r, req.Status)
	if !ok {
		return
	}

	projectSlug, err := slug.Unique(req.Title, func(candidate string) (bool, error) {
		return h.projects.SlugExists(candidate, uuid.Nil)
	})
	if err != nil {
		serverError(w, r, "slug generation failed", err)
		return
	}

	now := time.Now()
	project := &models.Project{
		Title:           strings.TrimSpace(req.Title),
		Slug:            projectSlug,
		Description:     req.Description,
		DetailedBody:    req.DetailedBody,
		MetaTitle:       meta.Title(req.MetaTitle, req.Title),
		MetaDescription: meta.Description(req.MetaDescription, req.Description),
		FeaturedImageID: req.FeaturedImageID,
		DemoURL:         req.DemoURL,
		SourceURL:       req.SourceURL,
		OwnerID:         callerID,
		CategoryID:      req.CategoryID,
		Status:          status,
		Featured:        req.Featured,
		PublishedAt:     models.NextPublishedAt(status, nil, now),
	}

	created, err := h.projects.Create(project)
	if err != nil {
		if store.IsUniqueViolation(err) {
			respondError(w, r, http.StatusConflict, "slug already in use")
			return
		}
		serverError(w, r, "create project failed", err)
		return
	}

	if req.Technologies != nil {
		if err := h.applyTechnologies(created, req.Technologies); err != nil {
			serverError(w, r, "apply technologies failed", err)
			return
		}
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusCreated, created)
}

// Update modifies a project. Only the owner may write; the slug never
// changes once assigned.
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContent(req.Title, req.DetailedBody, req.Description); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}
	status, ok := parseStatus(w, r, req.Status)
	if !ok {
		return
	}

	now := time.Now()
	project.Title = strings.TrimSpace(req.Title)
	project.Description = req.Description
	project.DetailedBody = req.DetailedBody
	project.MetaTitle = meta.Title(req.MetaTitle, req.Title)
	project.MetaDescription = meta.Description(req.MetaDescription, req.Description)
	project.FeaturedImageID = req.FeaturedImageID
	project.DemoURL = req.DemoURL
	project.SourceURL = req.SourceURL
	project.CategoryID = req.CategoryID
	project.Status = status
	project.Featured = req.Featured
	project.PublishedAt = models.NextPublishedAt(status, project.PublishedAt, now)

	if err := h.projects.Update(project); err != nil {
		serverError(w, r, "update project failed", err)
		return
	}

	if req.Technologies != nil {
		if err := h.applyTechnologies(project, req.Technologies); err != nil {
			serverError(w, r, "apply technologies failed", err)
			return
		}
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusOK, project)
}

// Delete removes a project. Only the owner may delete.
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	if err := h.projects.Delete(project.ID); err != nil {
		serverError(w, r, "delete project failed", err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ownedProject loads the project named in the URL and enforces that the
// caller is its owner.
func (h *Projects) ownedProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	callerID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return nil, false
	}

	project, err := h.projects.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, r, "find project failed", err)
		return nil, false
	}
	if project == nil {
		respondError(w, r, http.StatusNotFound, "project not found")
		return nil, false
	}
	if project.OwnerID != callerID {
		respondError(w, r, http.StatusForbidden, "you do not own this project")
		return nil, false
	}
	return project, true
}

// applyTechnologies resolves technology names to rows (creating missing
// ones) and replaces the project's associations.
func (h *Projects) applyTechnologies(project *models.Project, names []string) error {
	var ids []uuid.UUID
	project.Technologies = nil
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tech, err := h.technologies.FindOrCreate(name, slug.Generate(name), "")
		if err != nil {
			return err
		}
		ids = append(ids, tech.ID)
		project.Technologies = append(project.Technologies, *tech)
	}
	return h.projects.SetTechnologies(project.ID, ids)
}
