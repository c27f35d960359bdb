// Copyright (c) 2026 MangroveNet. All rights reserved.

package comment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/dberr"
	"github.com/mangrovenet/mangrovenet/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByContent(context context.Context, contentID string, params pagination.Params) ([]*Comment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM core.comment WHERE contentid = $1`
	if err := repository.db.QueryRow(context, countQuery, contentID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := `
		SELECT id, contentid, name, email, text, createdat
		FROM core.comment
		WHERE contentid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, contentID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	// Initialized non-nil so an empty page serializes as [] rather than null.
	comments := []*Comment{}
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ContentID, &c.Name, &c.Email, &c.Text, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, rows.Err()
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := `
		INSERT INTO core.comment (id, contentid, name, email, text, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.db.Exec(context, query,
		comment.ID, comment.ContentID, comment.Name, comment.Email,
		comment.Text, comment.CreatedAt,
	)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM core.comment WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
