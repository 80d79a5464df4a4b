// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/slug"
	"folio/internal/store"
)

// Taxonomy groups category, tag, and technology handlers. Public reads
// carry published-entity counts; writes are owner-only.
type Taxonomy struct {
	categories   *store.CategoryStore
	tags         *store.TagStore
	technologies *store.TechnologyStore
	respCache    *cache.ResponseCache
}

// NewTaxonomy creates a new Taxonomy handler group.
func NewTaxonomy(categories *store.CategoryStore, tags *store.TagStore, technologies *store.TechnologyStore, respCache *cache.ResponseCache) *Taxonomy {
	return &Taxonomy{
		categories:   categories,
		tags:         tags,
		technologies: technologies,
		respCache:    respCache,
	}
}

// BlogCategories lists blog categories with published post counts.
func (h *Taxonomy) BlogCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, models.CategoryKindBlog, "categories:blog")
}

// ProjectCategories lists portfolio categories with published project counts.
func (h *Taxonomy) ProjectCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, models.CategoryKindProject, "categories:project")
}

func (h *Taxonomy) listCategories(w http.ResponseWriter, r *http.Request, kind models.CategoryKind, cacheKey string) {
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	categories, err := h.categories.ListByKind(kind)
	if err != nil {
		serverError(w, r, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondAndCache(w, r, h.respCache, cacheKey, categories)
}

// Tags lists blog tags with published post counts.
func (h *Taxonomy) Tags(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "tags:all"
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	tags, err := h.tags.List()
	if err != nil {
		serverError(w, r, "list tags failed", err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	respondAndCache(w, r, h.respCache, cacheKey, tags)
}

// Technologies lists technologies with published project counts.
func (h *Taxonomy) Technologies(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "technologies:all"
	if serveCached(w, r, h.respCache, cacheKey) {
		return
	}

	techs, err := h.technologies.List()
	if err != nil {
		serverError(w, r, "list technologies failed", err)
		return
	}
	if techs == nil {
		techs = []models.Technology{}
	}
	respondAndCache(w, r, h.respCache, cacheKey, techs)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CreateBlogCategory adds a category in the blog namespace.
func (h *Taxonomy) CreateBlogCategory(w http.ResponseWriter, r *http.Request) {
	h.createCategory(w, r, models.CategoryKindBlog)
}

// CreateProjectCategory adds a category in the portfolio namespace.
func (h *Taxonomy) CreateProjectCategory(w http.ResponseWriter, r *http.Request) {
	h.createCategory(w, r, models.CategoryKindProject)
}

func (h *Taxonomy) createCategory(w http.ResponseWriter, r *http.Request, kind models.CategoryKind) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	catSlug, err := slug.Unique(name, func(candidate string) (bool, error) {
		return h.categories.SlugExists(kind, candidate)
	})
	if err != nil {
		serverError(w, r, "slug generation failed", err)
		return
	}

	created, err := h.categories.Create(&models.Category{
		Kind:        kind,
		Name:        name,
		Slug:        catSlug,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			respondError(w, r, http.StatusConflict, "category already exists")
			return
		}
		serverError(w, r, "create category failed", err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	respond(w, r, http.StatusCreated, created)
}

// DeleteCategory removes a category by ID. Content referencing it keeps
// existing without a category.
func (h *Taxonomy) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		serverError(w, r, "find category failed", err)
		return
	}
	if category == nil {
		respondError(w, r, http.StatusNotFound, "category not found")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		serverError(w, r, "delete category failed", err)
		return
	}

	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTag removes a tag. Posts keep existing; only associations go.
func (h *Taxonomy) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid tag id")
		return
	}
	if err := h.tags.Delete(id); err != nil {
		serverError(w, r, "delete tag failed", err)
		return
	}
	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTechnology removes a technology. Projects keep existing.
func (h *Taxonomy) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid technology id")
		return
	}
	if err := h.technologies.Delete(id); err != nil {
		serverError(w, r, "delete technology failed", err)
		return
	}
	h.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
