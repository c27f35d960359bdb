// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
PostgreSQL implementation of the content aggregate store.

It leans on two Postgres features to keep the aggregate honest:
  - JSON Aggregation: every owned collection is folded into the root row
    via json_agg sub-queries, so a full aggregate is one round-trip.
  - ACID Transactions: the create fan-out and the delete-then-recreate
    update both run inside a single transaction, so readers never observe
    a half-replaced aggregate.

The JSON keys emitted by the sub-queries are the wire contract: stored path
columns (filepath, imagepath) surface as "file" / "image".
*/
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangrovenet/mangrovenet/internal/core/country"
	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/pkg/uuid"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed content store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// contentSelect is the shared aggregate projection. Each COALESCE'd
// sub-query folds one owned collection into a JSON array whose object keys
// match the wire contract exactly.
const contentSelect = `
	SELECT
		c.id, c.slug, c.title, c.summary, c.author, c.date, c.cover,
		c.keywords, c.status, c.countryid, c.userid,
		c.createdat, c.updatedat, c.reviewedat,
		co.id, co.name, co.latitude, co.longitude,
		co.landarea, co.landareanum, co.forestarea, co.forestareanum,
		co.mangrovearea, co.mangroveareanum,
		co.challenges, co.recommendation, co.programactivities, co.policy,
		co.createdat, co.updatedat,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', ec.id,
				'title', ec.title,
				'description', ec.description,
				'images', COALESCE((
					SELECT json_agg(json_build_object(
						'id', ci.id, 'file', ci.filepath, 'alt', ci.alt
					) ORDER BY ci.position)
					FROM core.conditionimage ci WHERE ci.conditionid = ec.id
				), '[]')
			) ORDER BY ec.position)
			FROM core.existingcondition ec WHERE ec.contentid = c.id
		), '[]') AS conditions,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', d.id,
				'type', d.type,
				'title', d.title,
				'inputMethod', d.inputmethod,
				'significantAspects', d.significantaspects,
				'score', d.score,
				'narrative', d.narrative,
				'graphImages', COALESCE((
					SELECT json_agg(json_build_object(
						'id', gi.id, 'file', gi.filepath, 'alt', gi.alt
					) ORDER BY gi.position)
					FROM core.graphimage gi WHERE gi.dimensionid = d.id
				), '[]')
			) ORDER BY d.position)
			FROM core.dimension d WHERE d.contentid = c.id
		), '[]') AS dimensions,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', sd.id, 'name', sd.name, 'file', sd.filepath
			) ORDER BY sd.position)
			FROM core.supportingdoc sd WHERE sd.contentid = c.id
		), '[]') AS docs,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', m.id, 'image', m.imagepath, 'alt', m.alt
			) ORDER BY m.position)
			FROM core.mapimage m WHERE m.contentid = c.id
		), '[]') AS maps,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', g.id, 'image', g.imagepath, 'alt', g.alt
			) ORDER BY g.position)
			FROM core.galleryimage g WHERE g.contentid = c.id
		), '[]') AS galleries,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', v.id, 'url', v.url
			) ORDER BY v.position)
			FROM core.videolink v WHERE v.contentid = c.id
		), '[]') AS videos
	FROM core.content c
	JOIN core.country co ON co.id = c.countryid
`

// scanContent maps one aggregate row, unmarshalling the folded collections
// and deriving video embed URLs.
func scanContent(row pgx.Row) (*Content, error) {
	item := &Content{Country: &country.Country{}}
	var conditions, dimensions, docs, maps, galleries, videos []byte

	err := row.Scan(
		&item.ID, &item.Slug, &item.Title, &item.Summary, &item.Author,
		&item.Date, &item.Cover, &item.Keywords, &item.Status,
		&item.CountryID, &item.UserID,
		&item.CreatedAt, &item.UpdatedAt, &item.ReviewedAt,
		&item.Country.ID, &item.Country.Name,
		&item.Country.Latitude, &item.Country.Longitude,
		&item.Country.LandArea, &item.Country.LandAreaNum,
		&item.Country.ForestArea, &item.Country.ForestAreaNum,
		&item.Country.MangroveArea, &item.Country.MangroveAreaNum,
		&item.Country.Challenges, &item.Country.Recommendation,
		&item.Country.ProgramActivities, &item.Country.Policy,
		&item.Country.CreatedAt, &item.Country.UpdatedAt,
		&conditions, &dimensions, &docs, &maps, &galleries, &videos,
	)
	if err != nil {
		return nil, err
	}

	collections := []struct {
		raw         []byte
		destination any
	}{
		{conditions, &item.ExistingConditions},
		{dimensions, &item.Dimensions},
		{docs, &item.SupportingDocs},
		{maps, &item.Maps},
		{galleries, &item.Galleries},
		{videos, &item.VideoLinks},
	}
	for _, collection := range collections {
		if err := json.Unmarshal(collection.raw, collection.destination); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal collection: %w", err)
		}
	}

	if item.Keywords == nil {
		item.Keywords = []string{}
	}
	for i := range item.VideoLinks {
		item.VideoLinks[i].EmbedURL = DeriveEmbedURL(item.VideoLinks[i].URL)
	}

	return item, nil
}

// # Reads

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Content, error) {
	query := contentSelect + ` WHERE c.id = $1`

	item, err := scanContent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Content")
		}
		return nil, fmt.Errorf("postgres: failed to find content by id: %w", err)
	}

	return item, nil
}

func (repository *postgresRepository) ListByStatus(context context.Context, status Status, countryID string) ([]*Content, error) {
	query := contentSelect
	var args []any
	clause := " WHERE"

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf("%s c.status = $%d", clause, len(args))
		clause = " AND"
	}
	if countryID != "" {
		args = append(args, countryID)
		query += fmt.Sprintf("%s c.countryid = $%d", clause, len(args))
	}
	query += ` ORDER BY c.date DESC, c.createdat DESC`

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list content: %w", err)
	}
	defer rows.Close()

	items := []*Content{}
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan content: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// # Writes

func (repository *postgresRepository) Create(context context.Context, content *Content) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer transaction.Rollback(context)

	now := time.Now().UTC()
	content.CreatedAt = now
	content.UpdatedAt = now

	query := `
		INSERT INTO core.content (
			id, slug, title, summary, author, date, cover, keywords,
			status, countryid, userid, createdat, updatedat, reviewedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = transaction.Exec(context, query,
		content.ID, content.Slug, content.Title, content.Summary,
		content.Author, content.Date, content.Cover, content.Keywords,
		content.Status, content.CountryID, content.UserID,
		content.CreatedAt, content.UpdatedAt, content.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to create content: %w", err)
	}

	if err := repository.insertCollections(context, transaction, content, ReplaceAll()); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

func (repository *postgresRepository) Update(context context.Context, content *Content, replace ReplaceSet) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer transaction.Rollback(context)

	content.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE core.content SET
			slug = $2, title = $3, summary = $4, author = $5, date = $6,
			cover = $7, keywords = $8, status = $9, updatedat = $10
		WHERE id = $1`

	tag, err := transaction.Exec(context, query,
		content.ID, content.Slug, content.Title, content.Summary,
		content.Author, content.Date, content.Cover, content.Keywords,
		content.Status, content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	// Full-replace semantics: each included collection is wiped and rebuilt
	// from the submitted set inside this transaction.
	if err := repository.clearCollections(context, transaction, content.ID, replace); err != nil {
		return err
	}
	if err := repository.insertCollections(context, transaction, content, replace); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return nil
}

// clearCollections deletes every owned row of the flagged collections.
// Nested images ride on ON DELETE CASCADE from their parent rows.
func (repository *postgresRepository) clearCollections(context context.Context, transaction pgx.Tx, contentID string, replace ReplaceSet) error {
	targets := []struct {
		flagged bool
		table   string
	}{
		{replace.ExistingConditions, "core.existingcondition"},
		{replace.Dimensions, "core.dimension"},
		{replace.SupportingDocs, "core.supportingdoc"},
		{replace.Maps, "core.mapimage"},
		{replace.Galleries, "core.galleryimage"},
		{replace.VideoLinks, "core.videolink"},
	}

	for _, target := range targets {
		if !target.flagged {
			continue
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE contentid = $1", target.table)
		if _, err := transaction.Exec(context, query, contentID); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", target.table, err)
		}
	}

	return nil
}

// insertCollections fans the aggregate's owned collections out into their
// tables. All inserts for a collection are queued on one pgx.Batch to bound
// round-trips.
func (repository *postgresRepository) insertCollections(context context.Context, transaction pgx.Tx, content *Content, replace ReplaceSet) error {
	batch := &pgx.Batch{}

	if replace.ExistingConditions {
		for position := range content.ExistingConditions {
			condition := &content.ExistingConditions[position]
			if condition.ID == "" {
				condition.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.existingcondition (id, contentid, position, title, description)
				 VALUES ($1, $2, $3, $4, $5)`,
				condition.ID, content.ID, position, condition.Title, condition.Description,
			)
			for imagePosition := range condition.Images {
				img := &condition.Images[imagePosition]
				if img.ID == "" {
					img.ID = uuid.New()
				}
				batch.Queue(
					`INSERT INTO core.conditionimage (id, conditionid, position, filepath, alt)
					 VALUES ($1, $2, $3, $4, $5)`,
					img.ID, condition.ID, imagePosition, img.File, img.Alt,
				)
			}
		}
	}

	if replace.Dimensions {
		for position := range content.Dimensions {
			dimension := &content.Dimensions[position]
			if dimension.ID == "" {
				dimension.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.dimension (id, contentid, position, type, title, inputmethod, significantaspects, score, narrative)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				dimension.ID, content.ID, position, dimension.Type, dimension.Title,
				dimension.InputMethod, dimension.SignificantAspects,
				dimension.Score, dimension.Narrative,
			)
			for imagePosition := range dimension.GraphImages {
				img := &dimension.GraphImages[imagePosition]
				if img.ID == "" {
					img.ID = uuid.New()
				}
				batch.Queue(
					`INSERT INTO core.graphimage (id, dimensionid, position, filepath, alt)
					 VALUES ($1, $2, $3, $4, $5)`,
					img.ID, dimension.ID, imagePosition, img.File, img.Alt,
				)
			}
		}
	}

	if replace.SupportingDocs {
		for position := range content.SupportingDocs {
			doc := &content.SupportingDocs[position]
			if doc.ID == "" {
				doc.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.supportingdoc (id, contentid, position, name, filepath)
				 VALUES ($1, $2, $3, $4, $5)`,
				doc.ID, content.ID, position, doc.Name, doc.File,
			)
		}
	}

	if replace.Maps {
		for position := range content.Maps {
			m := &content.Maps[position]
			if m.ID == "" {
				m.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.mapimage (id, contentid, position, imagepath, alt)
				 VALUES ($1, $2, $3, $4, $5)`,
				m.ID, content.ID, position, m.Image, m.Alt,
			)
		}
	}

	if replace.Galleries {
		for position := range content.Galleries {
			g := &content.Galleries[position]
			if g.ID == "" {
				g.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.galleryimage (id, contentid, position, imagepath, alt)
				 VALUES ($1, $2, $3, $4, $5)`,
				g.ID, content.ID, position, g.Image, g.Alt,
			)
		}
	}

	if replace.VideoLinks {
		for position := range content.VideoLinks {
			v := &content.VideoLinks[position]
			if v.ID == "" {
				v.ID = uuid.New()
			}
			batch.Queue(
				`INSERT INTO core.videolink (id, contentid, position, url)
				 VALUES ($1, $2, $3, $4)`,
				v.ID, content.ID, position, v.URL,
			)
		}
	}

	if batch.Len() == 0 {
		return nil
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to insert content collections: %w", err)
	}

	return nil
}

// # Deletion & Lifecycle

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	// Owned rows cascade via foreign keys. Stored binaries are left behind.
	tag, err := repository.pool.Exec(context, `DELETE FROM core.content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}
	return nil
}

func (repository *postgresRepository) SetStatus(context context.Context, id string, status Status) error {
	query := `UPDATE core.content SET status = $2, updatedat = NOW() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, status)
	if err != nil {
		return fmt.Errorf("postgres: failed to set content status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}
	return nil
}

func (repository *postgresRepository) Decide(context context.Context, id string, approve bool) error {
	status := StatusDraft
	if approve {
		status = StatusPublished
	}

	// Conditional on REVIEW so concurrent decisions cannot double-apply.
	query := `
		UPDATE core.content
		SET status = $2, reviewedat = NOW(), updatedat = NOW()
		WHERE id = $1 AND status = $3`

	tag, err := repository.pool.Exec(context, query, id, status, StatusReview)
	if err != nil {
		return fmt.Errorf("postgres: failed to apply review decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Content in review")
	}
	return nil
}

func (repository *postgresRepository) RevertToDraft(context context.Context, id string) error {
	// Zero rows affected means the row is missing or not currently
	// published; both surface as not found.
	query := `
		UPDATE core.content
		SET status = $2, updatedat = NOW()
		WHERE id = $1 AND status = $3`

	tag, err := repository.pool.Exec(context, query, id, StatusDraft, StatusPublished)
	if err != nil {
		return fmt.Errorf("postgres: failed to revert content to draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Published content")
	}
	return nil
}
