// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package media_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soultanzania/safari-api/internal/core/media"
	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/constants"
)

// memoryStorage captures saved objects for assertions.
type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Save(_ context.Context, objectName string, contents io.Reader) error {
	raw, err := io.ReadAll(contents)
	if err != nil {
		return err
	}
	m.objects[objectName] = raw
	return nil
}

/*
TestService_Upload covers the accept path: object naming, URL shape, and
payload persistence.
*/
func TestService_Upload(t *testing.T) {
	storage := newMemoryStorage()
	service := media.NewService(storage, "https://api.soultanzania.com/")

	payload := []byte("fake png bytes")
	object, err := service.Upload(context.Background(), "lion Pride.PNG", "image/png", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(object.Name, ".png"))
	assert.Equal(t, "https://api.soultanzania.com/uploads/"+object.Name, object.URL)
	assert.Equal(t, "image/png", object.ContentType)
	assert.Equal(t, payload, storage.objects[object.Name])

	// Uploading the same filename twice never collides
	second, err := service.Upload(context.Background(), "lion Pride.PNG", "image/png", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	assert.NotEqual(t, object.Name, second.Name)
}

/*
TestService_Upload_Rejections covers the size cap and the MIME restriction.
*/
func TestService_Upload_Rejections(t *testing.T) {
	service := media.NewService(newMemoryStorage(), "https://api.soultanzania.com")

	_, err := service.Upload(context.Background(), "huge.jpg", "image/jpeg", constants.MaxUploadBytes+1, bytes.NewReader(nil))
	require.Error(t, err)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", apperr.As(err).Code)

	_, err = service.Upload(context.Background(), "notes.pdf", "application/pdf", 128, bytes.NewReader(nil))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Upload_ExtensionHandling checks that only a clean extension
survives from the client filename.
*/
func TestService_Upload_ExtensionHandling(t *testing.T) {
	service := media.NewService(newMemoryStorage(), "https://api.soultanzania.com")

	tests := []struct {
		name     string
		filename string
		suffix   string
	}{
		{"normal", "photo.jpeg", ".jpeg"},
		{"uppercase", "PHOTO.JPG", ".jpg"},
		{"no_extension", "photo", ""},
		{"weird_characters", "photo.j%g", ""},
		{"overlong", "photo.superlongext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object, err := service.Upload(context.Background(), tt.filename, "image/jpeg", 4, bytes.NewReader([]byte("data")))
			require.NoError(t, err)

			if tt.suffix == "" {
				assert.NotContains(t, object.Name, ".")
			} else {
				assert.True(t, strings.HasSuffix(object.Name, tt.suffix))
			}
		})
	}
}
