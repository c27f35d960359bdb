// Copyright (c) 2026 MangroveNet. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangrovenet/mangrovenet/internal/platform/middleware"
	requestutil "github.com/mangrovenet/mangrovenet/internal/platform/request"
	"github.com/mangrovenet/mangrovenet/internal/platform/respond"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/platform/validate"
	"github.com/mangrovenet/mangrovenet/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints.
//
// # Endpoints
//   - GET    /?contentId= : Public listing, newest first, paginated.
//   - POST   /            : Public submission.
//   - DELETE /{id}        : Moderation, network-wide reviewers only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleSuperAdmin))
		r.Delete("/{id}", handler.deleteComment)
	})
}

type createCommentRequest struct {
	ContentID string `json:"contentId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Text      string `json:"text"`
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	contentID := requestutil.Query(request, FieldContentID)

	validator := &validate.Validator{}
	validator.Required(FieldContentID, contentID).UUID(FieldContentID, contentID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, meta, err := handler.service.ListComments(request.Context(), contentID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input createCommentRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContentID, input.ContentID).
		UUID(FieldContentID, input.ContentID).
		Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, 2000)

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), CreateInput{
		ContentID: input.ContentID,
		Name:      input.Name,
		Email:     input.Email,
		Text:      input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if validator.UUID("id", id); validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	if err := handler.service.DeleteComment(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
