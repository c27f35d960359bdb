// Copyright (c) 2026 MangroveNet. All rights reserved.

package comment

import (
	"context"

	"github.com/mangrovenet/mangrovenet/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {

	// ListByContent returns one page of comments on the given content item,
	// newest first, along with the total count across all pages.
	ListByContent(context context.Context, contentID string, params pagination.Params) ([]*Comment, int, error)

	// Create persists a new comment.
	Create(context context.Context, comment *Comment) error

	// Delete removes a comment permanently. Returns apperr.NotFound when no
	// row matches.
	Delete(context context.Context, id string) error
}
