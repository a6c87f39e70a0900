// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
Package media handles image uploads for the package catalog.

The back office uploads package photos here; the service validates and
stores the binary, and hands back a public URL. The catalog pipeline only
ever sees that URL as a plain string field, it performs no image handling
itself.
*/
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/constants"
	"github.com/soultanzania/safari-api/pkg/uuid"
)

// # Storage Contract

// Storage persists uploaded binaries under an object name.
type Storage interface {

	/*
		Save writes the object's contents under the given name, overwriting
		any previous object with that name.

		Parameters:
		  - context: context.Context
		  - objectName: string (Flat, URL-safe name)
		  - contents: io.Reader

		Returns:
		  - error: Write failures
	*/
	Save(context context.Context, objectName string, contents io.Reader) error
}

// Object describes a stored upload.
type Object struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// # Service Layer

// Service validates and stores image uploads.
type Service struct {
	storage Storage
	baseURL string
}

// NewService constructs a media [Service]. baseURL is the public origin the
// stored objects are served from, without a trailing slash.
func NewService(storage Storage, baseURL string) *Service {
	return &Service{
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

/*
Upload validates and stores one image.

Description: Enforces the two upload rules: the payload must not exceed
the configured byte limit, and the declared content type must be an image.
The stored object gets a UUIDv7-based name so uploads never collide and
sort by time on disk; the original filename only contributes its
extension.

Parameters:
  - context: context.Context
  - filename: string (Client-supplied name, extension only is used)
  - contentType: string (Declared MIME type)
  - size: int64 (Payload size in bytes)
  - contents: io.Reader

Returns:
  - *Object: Stored object metadata including the public URL
  - error: PayloadTooLarge, validation, or storage failures
*/
func (service *Service) Upload(context context.Context, filename, contentType string, size int64, contents io.Reader) (*Object, error) {

	if size > constants.MaxUploadBytes {
		return nil, apperr.PayloadTooLarge(
			fmt.Sprintf("Image exceeds the %d MiB upload limit", constants.MaxUploadBytes>>20))
	}

	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, apperr.ValidationError("Only image uploads are accepted", apperr.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("Unsupported content type %q", contentType),
		})
	}

	objectName := uuid.New() + sanitizeExtension(filename)

	if err := service.storage.Save(context, objectName, contents); err != nil {
		return nil, apperr.Internal(fmt.Errorf("media: failed to store upload: %w", err))
	}

	return &Object{
		Name:        objectName,
		URL:         fmt.Sprintf("%s/uploads/%s", service.baseURL, objectName),
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// sanitizeExtension keeps a short, lower-case extension from the original
// filename. Anything odd degrades to no extension; the content type, not
// the name, is what was validated.
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}

	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
