// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the folio API.
// Handlers are grouped by concern (auth, posts, projects, comments,
// taxonomy, media, stats) and receive their dependencies through the
// handler struct. All responses are JSON.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"folio/internal/cache"
)

// errResponse is the uniform error envelope.
type errResponse struct {
	Error string `json:"error"`
}

// respond writes v as JSON with the given status code.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError writes the error envelope with the given status code.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, errResponse{Error: message})
}

// serverError logs the underlying error and returns an opaque 500.
// Internal details never reach the client.
func serverError(w http.ResponseWriter, r *http.Request, what string, err error) {
	slog.Error(what, "error", err, "path", r.URL.Path)
	respondError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON binds the request body into v, returning false (and a 400)
// when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// serveCached writes a previously cached JSON body if one exists.
func serveCached(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string) bool {
	body, ok := rc.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
	return true
}

// respondAndCache writes v as JSON and stores the body for later requests.
func respondAndCache(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		serverError(w, r, "encode response failed", err)
		return
	}
	rc.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}
