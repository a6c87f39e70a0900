// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
HTTP interface for the travel inquiry intake and its back-office workflow.

# Routing Strategy

  - Public (v1): The intake endpoint the marketing site's form posts to.
    Rate limiting at the router level is the only spam defence; there is no
    captcha verification server-side.
  - Restricted (v1): Listing, status handling, and deletion for the sales team.
*/
package proposal

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soultanzania/safari-api/internal/platform/middleware"
	requestutil "github.com/soultanzania/safari-api/internal/platform/request"
	"github.com/soultanzania/safari-api/internal/platform/respond"
	"github.com/soultanzania/safari-api/internal/platform/sec"
	"github.com/soultanzania/safari-api/internal/platform/validate"
	"github.com/soultanzania/safari-api/pkg/pagination"
	"github.com/soultanzania/safari-api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for travel inquiries.
type Handler struct {
	service *Service
}

// NewHandler constructs a new proposal [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the proposal endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Intake
	router.Post("/", handler.submit)

	// ## Back-Office Workflow (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/", handler.list)
		editor.Get("/{id}", handler.get)
		editor.Patch("/{id}/status", handler.setStatus)
	})

	// ## Destructive Operations (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Delete("/{id}", handler.remove)
	})

	return router
}

// # Endpoints

/*
POST /api/v1/proposals.

Description: Records a new travel inquiry from the public multi-step form.
Full name and a valid email are required; everything else is optional.

Request (Body): SubmitInput JSON.

Response:
  - 201: Proposal: The recorded inquiry with its reference code
  - 400: ValidationError: Missing contact details
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	prop, err := handler.service.Submit(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, prop)
}

/*
GET /api/v1/proposals.

Description: Back-office inquiry listing, newest first.

Request:
  - status: []string (new, contacted, responded, closed)
  - q: string (Name, email, or reference search)
  - limit: int
  - page: int

Response:
  - 200: []Proposal: Paginated inquiries
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{Query: request.URL.Query().Get("q")}

	// Accepts both repeated parameters and comma-separated values
	for _, raw := range request.URL.Query()["status"] {
		for _, value := range query.StringSlice(raw) {
			if status := Status(value); status.IsValid() {
				filter.Status = append(filter.Status, status)
			}
		}
	}

	proposals, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, proposals, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/proposals/{id}.

Response:
  - 200: Proposal: Success
  - 404: NotFound: No inquiry with that id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := proposalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	prop, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, prop)
}

// setStatusRequest carries the target handling state.
type setStatusRequest struct {
	Status Status `json:"status"`
}

/*
PATCH /api/v1/proposals/{id}/status.

Description: Moves an inquiry to a new handling state. Transitions are
unrestricted between valid states.

Request (Body):
  - status: string (new, contacted, responded, closed)

Response:
  - 200: Proposal: The inquiry with the new status
  - 400: ValidationError: Unknown status value
  - 404: NotFound: No inquiry with that id
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := proposalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload setStatusRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	prop, err := handler.service.SetStatus(request.Context(), id, payload.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, prop)
}

/*
DELETE /api/v1/proposals/{id}.

Response:
  - 204: Removed
  - 404: NotFound: No inquiry with that id
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := proposalID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Internal Helpers

// proposalID extracts and validates the numeric {id} URL parameter.
func proposalID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError("id", "Proposal id must be a positive integer")
	}
	return id, nil
}
