// Copyright (c) 2026 MangroveNet. All rights reserved.

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/core/comment"
	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/pkg/pagination"
)

// stubRepository records the last persisted comment.
type stubRepository struct {
	created *comment.Comment
	deleted string
	listed  []*comment.Comment
}

func (s *stubRepository) ListByContent(_ context.Context, _ string, _ pagination.Params) ([]*comment.Comment, int, error) {
	return s.listed, len(s.listed), nil
}

func (s *stubRepository) Create(_ context.Context, c *comment.Comment) error {
	s.created = c
	return nil
}

func (s *stubRepository) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func newTestService(repo *stubRepository) *comment.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return comment.NewService(repo, logger)
}

/*
TestCreateComment_Defaults verifies the anonymity defaults: blank names become
"Anonymous" and blank emails are stored as null.
*/
func TestCreateComment_Defaults(t *testing.T) {
	repo := &stubRepository{}
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), comment.CreateInput{
		ContentID: "0191d2a0-0000-7000-8000-000000000001",
		Name:      "   ",
		Email:     "",
		Text:      "Great initiative!",
	})
	require.NoError(t, err)

	assert.Equal(t, comment.AnonymousName, created.Name)
	assert.Nil(t, created.Email)
	assert.Equal(t, "Great initiative!", created.Text)
	assert.NotEmpty(t, created.ID)
	assert.Same(t, created, repo.created)
}

/*
TestCreateComment_KeepsProvidedIdentity verifies that a supplied name and email
survive untouched apart from whitespace trimming.
*/
func TestCreateComment_KeepsProvidedIdentity(t *testing.T) {
	repo := &stubRepository{}
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), comment.CreateInput{
		ContentID: "0191d2a0-0000-7000-8000-000000000001",
		Name:      " Dina ",
		Email:     " dina@mangrovenet.org ",
		Text:      "  Well documented.  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dina", created.Name)
	require.NotNil(t, created.Email)
	assert.Equal(t, "dina@mangrovenet.org", *created.Email)
	assert.Equal(t, "Well documented.", created.Text)
}

/*
TestListComments_Meta verifies the pagination metadata mirrors the repository
total rather than the page size.
*/
func TestListComments_Meta(t *testing.T) {
	repo := &stubRepository{listed: []*comment.Comment{{}, {}, {}}}
	service := newTestService(repo)

	_, meta, err := service.ListComments(context.Background(),
		"0191d2a0-0000-7000-8000-000000000001", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 1, meta.Page)
}

/*
TestCreateComment_BlankText verifies that whitespace-only text is rejected
before anything reaches the repository.
*/
func TestCreateComment_BlankText(t *testing.T) {
	repo := &stubRepository{}
	service := newTestService(repo)

	_, err := service.CreateComment(context.Background(), comment.CreateInput{
		ContentID: "0191d2a0-0000-7000-8000-000000000001",
		Text:      "   \t  ",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Nil(t, repo.created)
}
