// Copyright (c) 2026 MangroveNet. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/pkg/pagination"
	"github.com/mangrovenet/mangrovenet/pkg/pointer"
	"github.com/mangrovenet/mangrovenet/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput is the submission payload for a new comment.
type CreateInput struct {
	ContentID string
	Name      string
	Email     string
	Text      string
}

/*
CreateComment records a visitor comment on a content item.

Description: Applies the anonymity defaults before persisting: a blank name
becomes "Anonymous" and a blank email is stored as NULL rather than an empty
string. The text must carry at least one non-whitespace character.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Comment: The persisted comment with its generated id
  - error: Validation or persistence failures
*/
func (service *Service) CreateComment(context context.Context, input CreateInput) (*Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperr.ValidationError("Comment text must not be blank",
			apperr.FieldError{Field: FieldText, Message: "is required"})
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = AnonymousName
	}

	var email *string
	if trimmed := strings.TrimSpace(input.Email); trimmed != "" {
		email = pointer.To(trimmed)
	}

	comment := &Comment{
		ID:        uuid.New(),
		ContentID: input.ContentID,
		Name:      name,
		Email:     email,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns one page of comments on a content item, newest first,
// with the metadata block for the paginated response envelope.
func (service *Service) ListComments(context context.Context, contentID string, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	comments, total, err := service.repo.ListByContent(context, contentID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// DeleteComment removes a comment permanently.
func (service *Service) DeleteComment(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", id))
	return nil
}
