// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
HTTP delivery layer for the content aggregate.

# Routing Strategy

  - Public: listing published items and fetching one aggregate by id.
  - Restricted: authoring (multipart create/update), deletion, and the
    review-submission transitions require ADMIN.
  - Review: listing and deciding submissions is reserved for SUPER_ADMIN.

The handler translates between the web layer and the internal domain
[Service]; multipart decoding itself lives in ParseSubmission.
*/
package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangrovenet/mangrovenet/internal/platform/middleware"
	requestutil "github.com/mangrovenet/mangrovenet/internal/platform/request"
	"github.com/mangrovenet/mangrovenet/internal/platform/respond"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the content HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public and authoring endpoints.
//
// # Endpoints
//   - GET    /            : Published listing (?countryId= filter).
//   - GET    /{id}        : One aggregate with full projection.
//   - POST   /            : Create (multipart), ADMIN.
//   - PUT    /{id}        : Full-replace update (multipart), ADMIN.
//   - DELETE /{id}        : Cascade delete, ADMIN.
//   - PATCH  /{id}        : Submit for review, ADMIN.
//   - POST   /{id}/draft  : Revert PUBLISHED → DRAFT, ADMIN.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPublished)
	router.Get("/{id}", handler.getContent)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleAdmin))

		r.Post("/", handler.createContent)
		r.Put("/{id}", handler.updateContent)
		r.Delete("/{id}", handler.deleteContent)
		r.Patch("/{id}", handler.submitForReview)
		r.Post("/{id}/draft", handler.revertToDraft)
	})
}

// RegisterAdminRoutes mounts the status-filtered admin listings and the
// review decision endpoint. The caller wraps these in RequireAuth.
//
// # Endpoints
//   - GET   /content : All statuses; scoped to the caller's country unless SUPER_ADMIN.
//   - GET   /draft   : DRAFT only, same scoping.
//   - GET   /review  : REVIEW queue, SUPER_ADMIN.
//   - PATCH /review  : Approve/reject a submission, SUPER_ADMIN.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/content", handler.adminListAll)
		r.Get("/draft", handler.adminListDrafts)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleSuperAdmin))
		r.Get("/review", handler.adminListReview)
		r.Patch("/review", handler.decideReview)
	})
}

// # Public Reads

/*
GET /api/content?countryId=

Description: Lists PUBLISHED content with full nested includes, newest
publication date first, served through the redis listing cache.

Response:
  - 200: []Content
  - 400: ErrValidation: Malformed countryId
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	countryID := requestutil.Query(request, FieldCountryID)

	if countryID != "" {
		validator := &validate.Validator{}
		if validator.UUID(FieldCountryID, countryID); validator.HasErrors() {
			respond.Error(writer, request, validator.Err())
			return
		}
	}

	items, err := handler.service.ListPublished(request.Context(), countryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
GET /api/content/{id}

Description: Fetches one aggregate with every owned collection, the owning
country, projected file paths, and derived video embed URLs.

Response:
  - 200: Content
  - 400: ErrValidation: Malformed id
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) getContent(writer http.ResponseWriter, request *http.Request) {
	id, ok := handler.requireID(writer, request)
	if !ok {
		return
	}

	item, err := handler.service.GetContent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// # Authoring

/*
POST /api/content

Description: Creates a new aggregate from a multipart submission: a JSON
"payload" part plus named binary parts. Required scalars are title, summary,
author, date, and status; validation failures occur before any side effect.

Response:
  - 201: Content: The persisted aggregate with its generated id
  - 400: ErrValidation: Missing scalars, malformed payload, cardinality caps
  - 401/403: Authentication/role failures
*/
func (handler *Handler) createContent(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := ParseSubmission(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateRequiredScalars(&submission.Payload, true); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateContent(request.Context(), claims.UserID, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
PUT /api/content/{id}

Description: Applies a multipart submission to an existing aggregate. Every
collection present in the payload is fully replaced; entries may mix fresh
uploads with existing-path markers.

Response:
  - 200: Content: The updated aggregate
  - 400: ErrValidation
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) updateContent(writer http.ResponseWriter, request *http.Request) {
	id, ok := handler.requireID(writer, request)
	if !ok {
		return
	}

	submission, err := ParseSubmission(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateRequiredScalars(&submission.Payload, false); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateContent(request.Context(), id, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/content/{id}

Description: Unconditionally deletes the aggregate; owned rows cascade.
Stored binaries are not purged.

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) deleteContent(writer http.ResponseWriter, request *http.Request) {
	id, ok := handler.requireID(writer, request)
	if !ok {
		return
	}

	if err := handler.service.DeleteContent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Lifecycle Transitions

/*
PATCH /api/content/{id}

Description: Moves the aggregate into REVIEW from any prior status. Content
editing is untouched; this is a single-field transition.

Response:
  - 200: Content: The aggregate in REVIEW
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) submitForReview(writer http.ResponseWriter, request *http.Request) {
	id, ok := handler.requireID(writer, request)
	if !ok {
		return
	}

	item, err := handler.service.SubmitForReview(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/content/{id}/draft

Description: Reverts a PUBLISHED aggregate to DRAFT for re-editing. The
update is conditional: a row not currently PUBLISHED yields 404 and its
status is untouched.

Response:
  - 200: Content: The aggregate back in DRAFT
  - 404: ErrNotFound: Unknown id or not currently PUBLISHED
*/
func (handler *Handler) revertToDraft(writer http.ResponseWriter, request *http.Request) {
	id, ok := handler.requireID(writer, request)
	if !ok {
		return
	}

	item, err := handler.service.RevertToDraft(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// # Admin Listings & Review

func (handler *Handler) adminListAll(writer http.ResponseWriter, request *http.Request) {
	handler.adminList(writer, request, "")
}

func (handler *Handler) adminListDrafts(writer http.ResponseWriter, request *http.Request) {
	handler.adminList(writer, request, StatusDraft)
}

// adminList serves a status-filtered listing scoped to the caller's country
// unless the caller is SUPER_ADMIN.
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request, status Status) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	countryID := claims.CountryID
	if claims.IsSuperAdmin() {
		countryID = requestutil.Query(request, FieldCountryID)
	}

	items, err := handler.service.ListByStatus(request.Context(), status, countryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
GET /api/admin/review

Description: Lists the REVIEW queue across all countries.

Response:
  - 200: []Content
  - 401/403: Authentication/role failures
*/
func (handler *Handler) adminListReview(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.ListByStatus(request.Context(), StatusReview, "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

type reviewDecisionRequest struct {
	ID      string `json:"id"`
	Approve *bool  `json:"approve"`
}

/*
PATCH /api/admin/review

Description: Resolves one submission: approve publishes it, reject returns
it to DRAFT. Both stamp reviewedAt. Conditional on the row being in REVIEW.

Request:
  - Body: reviewDecisionRequest (ID, Approve)

Response:
  - 200: Content: The aggregate after the decision
  - 400: ErrValidation: Missing id or approve flag
  - 404: ErrNotFound: Row missing or not in REVIEW
*/
func (handler *Handler) decideReview(writer http.ResponseWriter, request *http.Request) {
	var input reviewDecisionRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldID, input.ID).UUID(FieldID, input.ID)
	validator.Custom(FieldApprove, input.Approve == nil, "is required")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Decide(request.Context(), input.ID, *input.Approve)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// # Shared Helpers

// requireID extracts and validates the {id} URL parameter, writing the 400
// itself when malformed.
func (handler *Handler) requireID(writer http.ResponseWriter, request *http.Request) (string, bool) {
	id := requestutil.ID(request, FieldID)

	validator := &validate.Validator{}
	if validator.UUID(FieldID, id); validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return "", false
	}

	return id, true
}

// validateRequiredScalars enforces the mandatory scalar fields. countryId is
// only required on creation; updates keep the stored owner.
func validateRequiredScalars(payload *Payload, creating bool) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, payload.Title).
		Required(FieldSummary, payload.Summary).
		Required(FieldAuthor, payload.Author).
		Required(FieldDate, payload.Date).
		Required(FieldStatus, payload.Status)

	if creating {
		validator.Required(FieldCountryID, payload.CountryID).
			UUID(FieldCountryID, payload.CountryID)
	}

	return validator.Err()
}
