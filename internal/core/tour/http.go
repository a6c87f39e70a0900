// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
HTTP interface for discovery and management of the safari package catalog.

It exposes endpoints for browsing packages on the marketing site and for the
back office to create, edit, duplicate, and transition them.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /packages).
  - Restricted (v1): Mutative endpoints requiring the Editor role or above.

The handler translates between the web/JSON layer and the internal domain
[Service]. Mutative endpoints accept the loosely-typed admin document as-is;
normalization happens in the service, not here.
*/
package tour

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soultanzania/safari-api/internal/platform/middleware"
	requestutil "github.com/soultanzania/safari-api/internal/platform/request"
	"github.com/soultanzania/safari-api/internal/platform/respond"
	"github.com/soultanzania/safari-api/internal/platform/sec"
	"github.com/soultanzania/safari-api/internal/platform/validate"
	"github.com/soultanzania/safari-api/pkg/convert"
	"github.com/soultanzania/safari-api/pkg/pagination"
	"github.com/soultanzania/safari-api/pkg/pointer"
	"github.com/soultanzania/safari-api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for package management and discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new package [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the package domain's endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): The marketing site browses published packages only.
//   - Management (Restricted): Requires [sec.RoleEditor] for content edits and
//     lifecycle transitions; deletion is [sec.RoleAdmin] only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listPublished)
	router.Get("/{identifier}", handler.getPackage)

	// ## Content Management (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/manage/all", handler.listManaged)

		editor.Post("/", handler.createPackage)
		editor.Put("/{id}", handler.updatePackage)
		editor.Post("/{id}/duplicate", handler.duplicatePackage)

		// Lifecycle transitions
		editor.Post("/{id}/publish", handler.publishPackage)
		editor.Post("/{id}/unpublish", handler.unpublishPackage)
		editor.Post("/{id}/archive", handler.archivePackage)
		editor.Post("/{id}/restore", handler.restorePackage)
	})

	// ## Destructive Operations (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Delete("/{id}", handler.deletePackage)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/packages.

Description: Retrieves a paginated list of published packages for the
marketing site. Supports filtering by destination, tour type, and the
featured/popular flags, plus free-text search.

Request:
  - q: string (Search over name, description, location)
  - destination: string
  - type: string (Tour type)
  - featured: bool
  - popular: bool
  - sort: string (latest, price, rating, name)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Package: Paginated list of published packages
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	filter := filterFromQuery(request)

	// Public catalog only ever serves live content
	filter.Status = []Status{StatusPublished}

	handler.list(writer, request, filter)
}

/*
GET /api/v1/packages/manage/all.

Description: Back-office listing across every lifecycle state. Accepts the
same filters as the public listing plus an explicit status filter.

Request:
  - status: []string (draft, published, archived)
  - plus all public listing parameters

Response:
  - 200: []Package: Paginated list across all statuses
*/
func (handler *Handler) listManaged(writer http.ResponseWriter, request *http.Request) {
	filter := filterFromQuery(request)

	// Accepts both repeated parameters and comma-separated values
	for _, raw := range request.URL.Query()["status"] {
		for _, value := range query.StringSlice(raw) {
			if status := Status(value); status.IsValid() {
				filter.Status = append(filter.Status, status)
			}
		}
	}

	handler.list(writer, request, filter)
}

// list runs the shared listing flow for both discovery surfaces.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	paginationParams := pagination.FromRequest(request)

	packages, total, err := handler.service.ListPackages(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, packages, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/packages/{identifier}.

Description: Retrieves full detail for a package using either its numeric
ID or its unique slug. Numeric lookups take precedence.

Request:
  - identifier: string (Numeric ID or slug)

Response:
  - 200: Package: Success
  - 404: NotFound: No package matches the identifier
*/
func (handler *Handler) getPackage(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	pkg, err := handler.service.GetPackage(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pkg)
}

// # Management Endpoints

/*
POST /api/v1/packages.

Description: Creates a new package from a raw admin document. The payload
is intentionally schemaless; the normalization pipeline coerces every
field and applies business defaults. Name and price are the only hard
requirements.

Request (Body): JSON document with arbitrary package fields.

Response:
  - 201: Package: The persisted record with assigned identity
  - 400: ValidationError: Missing name or price
  - 409: Conflict: Slug already in use
*/
func (handler *Handler) createPackage(writer http.ResponseWriter, request *http.Request) {
	var doc Document
	if err := requestutil.DecodeJSON(request, &doc); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pkg, err := handler.service.CreatePackage(request.Context(), doc)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, pkg)
}

/*
PUT /api/v1/packages/{id}.

Description: Replaces the full content of an existing package from a raw
admin document. This is a replace, not a patch: every content field is
re-normalized from the payload. Status is unaffected; use the lifecycle
endpoints for that.

Request:
  - id: int64
  - Body: JSON document with arbitrary package fields

Response:
  - 200: Package: The updated record
  - 400: ValidationError: Missing name or price
  - 404: NotFound: Target does not exist
  - 409: Conflict: Requested slug already in use
*/
func (handler *Handler) updatePackage(writer http.ResponseWriter, request *http.Request) {
	id, err := packageID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var doc Document
	if err := requestutil.DecodeJSON(request, &doc); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pkg, err := handler.service.UpdatePackage(request.Context(), id, doc)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pkg)
}

/*
POST /api/v1/packages/{id}/duplicate.

Description: Clones a package as a fresh draft with a timestamped copy
slug. The source record is never modified.

Response:
  - 201: Package: The new draft clone
  - 404: NotFound: Source does not exist
*/
func (handler *Handler) duplicatePackage(writer http.ResponseWriter, request *http.Request) {
	id, err := packageID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clone, err := handler.service.DuplicatePackage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, clone)
}

/*
DELETE /api/v1/packages/{id}.

Description: Permanently removes a package. Prefer archiving for retired
content that should remain referenceable.

Response:
  - 204: Removed
  - 404: NotFound: Target does not exist
*/
func (handler *Handler) deletePackage(writer http.ResponseWriter, request *http.Request) {
	id, err := packageID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePackage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Lifecycle Endpoints
//
// Each transition is a deliberate partial patch touching only the lifecycle
// columns. They share one handler body parameterized by the service call.

// POST /api/v1/packages/{id}/publish.
func (handler *Handler) publishPackage(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.PublishPackage)
}

// POST /api/v1/packages/{id}/unpublish.
func (handler *Handler) unpublishPackage(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.UnpublishPackage)
}

// POST /api/v1/packages/{id}/archive.
func (handler *Handler) archivePackage(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.ArchivePackage)
}

// POST /api/v1/packages/{id}/restore.
func (handler *Handler) restorePackage(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, handler.service.RestorePackage)
}

// transition runs one lifecycle call and renders the updated record.
func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request, apply func(ctx context.Context, id int64) (*Package, error)) {
	id, err := packageID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pkg, err := apply(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pkg)
}

// # Internal Helpers

// packageID extracts and validates the numeric {id} URL parameter.
func packageID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError("id", "Package id must be a positive integer")
	}
	return id, nil
}

// filterFromQuery assembles the filter shared by both listing surfaces.
func filterFromQuery(request *http.Request) Filter {
	queryParams := request.URL.Query()

	filter := Filter{
		Query:       queryParams.Get("q"),
		Destination: queryParams.Get("destination"),
		TourType:    queryParams.Get("type"),
		Sort:        queryParams.Get("sort"),
		SortDir:     queryParams.Get("dir"),
	}

	if raw := queryParams.Get("featured"); raw != "" {
		filter.Featured = pointer.To(convert.ToBool(raw))
	}
	if raw := queryParams.Get("popular"); raw != "" {
		filter.Popular = pointer.To(convert.ToBool(raw))
	}

	return filter
}
