// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/constants"
	"github.com/soultanzania/safari-api/internal/platform/middleware"
	"github.com/soultanzania/safari-api/internal/platform/respond"
	"github.com/soultanzania/safari-api/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for image uploads.
type Handler struct {
	service *Service
}

// NewHandler constructs a new media [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the upload endpoint. Uploading is an
// editor capability; serving the stored files is mounted separately by the
// API server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))
		editor.Post("/", handler.upload)
	})

	return router
}

/*
POST /api/v1/uploads.

Description: Accepts a multipart form with a single "image" part holding
an image of at most the configured size. Returns the stored object's
public URL for use in package image and gallery fields.

Request (Multipart):
  - image: binary (Image payload, content type must start with image/)

Response:
  - 201: Object: Stored object metadata with public URL
  - 400: ValidationError: Missing part or non-image content type
  - 413: PayloadTooLarge: Payload exceeds the upload limit
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {

	// Cap the whole request body; a small allowance covers multipart framing.
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes+(64<<10))

	file, header, err := request.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(writer, request, apperr.PayloadTooLarge("Image exceeds the upload limit"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Multipart form must carry an \"image\" part"))
		return
	}
	defer file.Close()

	object, err := handler.service.Upload(
		request.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, object)
}
