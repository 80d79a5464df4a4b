// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/imaging"
	"folio/internal/models"
	"folio/internal/storage"
	"folio/internal/store"
)

// maxUploadBytes caps the multipart upload size (20 MB).
const maxUploadBytes = 20 << 20

// Media groups media upload and management handlers. Uploads are
// downscaled and stored in the S3 bucket; metadata goes to PostgreSQL.
type Media struct {
	media   *store.MediaStore
	storage *storage.Client
}

// NewMedia creates a new Media handler group. storageClient may be nil
// when object storage is not configured; uploads then fail with 500.
func NewMedia(media *store.MediaStore, storageClient *storage.Client) *Media {
	return &Media{media: media, storage: storageClient}
}

// Upload accepts a multipart image, downscales it, uploads it to the
// bucket, and records the metadata.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return
	}

	if h.storage == nil {
		respondError(w, r, http.StatusInternalServerError, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "could not read upload")
		return
	}

	processed, err := imaging.Process(raw)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "upload is not a supported image")
		return
	}

	key := fmt.Sprintf("media/%s.jpg", uuid.NewString())
	err = h.storage.Upload(r.Context(), key, processed.ContentType,
		bytes.NewReader(processed.Data), int64(len(processed.Data)))
	if err != nil {
		serverError(w, r, "media upload failed", err)
		return
	}

	created, err := h.media.Create(&models.Media{
		Key:          key,
		OriginalName: filepath.Base(header.Filename),
		ContentType:  processed.ContentType,
		Width:        processed.Width,
		Height:       processed.Height,
		SizeBytes:    int64(len(processed.Data)),
		UploaderID:   callerID,
	})
	if err != nil {
		// The object is already in the bucket; drop it so storage and
		// metadata stay consistent.
		if delErr := h.storage.Delete(r.Context(), key); delErr != nil {
			serverError(w, r, "media record failed, orphaned object", delErr)
			return
		}
		serverError(w, r, "media record failed", err)
		return
	}

	created.URL = h.storage.FileURL(created.Key)
	respond(w, r, http.StatusCreated, created)
}

// List returns all media records with resolved public URLs.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.media.List()
	if err != nil {
		serverError(w, r, "list media failed", err)
		return
	}
	if items == nil {
		items = []models.Media{}
	}
	if h.storage != nil {
		for i := range items {
			items[i].URL = h.storage.FileURL(items[i].Key)
		}
	}
	respond(w, r, http.StatusOK, items)
}

// Delete removes a media record and its stored object.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid media id")
		return
	}

	item, err := h.media.FindByID(id)
	if err != nil {
		serverError(w, r, "find media failed", err)
		return
	}
	if item == nil {
		respondError(w, r, http.StatusNotFound, "media not found")
		return
	}

	if h.storage != nil {
		if err := h.storage.Delete(r.Context(), item.Key); err != nil {
			serverError(w, r, "delete stored object failed", err)
			return
		}
	}
	if err := h.media.Delete(id); err != nil {
		serverError(w, r, "delete media record failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
