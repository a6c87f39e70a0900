// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package respond_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/respond"
	"github.com/soultanzania/safari-api/pkg/pagination"
)

/*
TestPaginated_EmptyPage locks the envelope contract for empty listings: the
SPA iterates over data unconditionally, so an empty page must render as a
JSON array, never null. Repositories uphold their half by returning non-nil
slices; this covers the envelope's half.
*/
func TestPaginated_EmptyPage(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []string{}, pagination.NewMeta(1, 20, 0))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":[],"meta":{"page":1,"limit":20,"total":0,"total_pages":0}}`,
		recorder.Body.String(),
	)
}

/*
TestPaginated_Meta verifies the metadata block, including the rounded-up
page count for a partial final page.
*/
func TestPaginated_Meta(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []string{"a", "b"}, pagination.NewMeta(2, 20, 41))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":["a","b"],"meta":{"page":2,"limit":20,"total":41,"total_pages":3}}`,
		recorder.Body.String(),
	)
}

/*
TestError_AppError renders the taxonomy status and machine code.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/packages/missing", nil)

	respond.Error(recorder, request, apperr.NotFound("Package"))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t,
		`{"error":"Package not found","code":"NOT_FOUND"}`,
		recorder.Body.String(),
	)
}
