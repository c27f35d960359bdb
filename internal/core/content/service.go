// Copyright (c) 2026 MangroveNet. All rights reserved.

package content

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/config"
	"github.com/mangrovenet/mangrovenet/internal/platform/imaging"
	"github.com/mangrovenet/mangrovenet/internal/platform/storage"
	"github.com/mangrovenet/mangrovenet/pkg/slug"
	"github.com/mangrovenet/mangrovenet/pkg/uuid"
)

// # Service Layer

// ListingCache is the published-listing cache contract, satisfied by
// [PublishedCache]. An interface so service tests need no Redis.
type ListingCache interface {
	Get(context context.Context, countryID string) ([]*Content, bool)
	Set(context context.Context, countryID string, items []*Content)
	Invalidate(context context.Context, countryID string)
}

// Service orchestrates the content aggregate: attachment resolution, score
// policy, the lifecycle state machine, and cache invalidation.
type Service struct {
	repo      Repository
	files     storage.Store
	cache     ListingCache
	scoreMode string
	logger    *slog.Logger

	// compress is swappable for tests; production wiring uses the imaging
	// pipeline.
	compress func([]byte) ([]byte, error)
}

// NewService constructs the content [Service].
func NewService(repo Repository, files storage.Store, cache ListingCache, scoreMode string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		files:     files,
		cache:     cache,
		scoreMode: scoreMode,
		logger:    logger,
		compress:  imaging.Compress,
	}
}

// # Authoring

/*
CreateContent builds and persists a new aggregate from a submission.

Description: Resolves every attachment entry (fresh uploads pass through the
compression pipeline and land in storage; existing-path markers pass through
verbatim), applies the configured score policy, and persists the whole
aggregate in one transaction. Files written before a later failure are an
accepted orphan; no database rows survive a failure.

Parameters:
  - context: context.Context
  - userID: string (The authenticated author)
  - submission: *Submission (Parsed and cardinality-checked)

Returns:
  - *Content: The persisted aggregate, re-read with full projection
  - error: Validation, storage, or persistence failures
*/
func (service *Service) CreateContent(context context.Context, userID string, submission *Submission) (*Content, error) {
	status := Status(submission.Payload.Status)
	if status != StatusDraft && status != StatusPublished {
		return nil, apperr.ValidationError("Content can only be created as DRAFT or PUBLISHED",
			apperr.FieldError{Field: FieldStatus, Message: "must be DRAFT or PUBLISHED"})
	}

	item, _, err := service.buildAggregate(context, submission, userID)
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New()
	item.Status = status

	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.CountryID)
	service.logger.Info("content_created",
		slog.String("content_id", item.ID),
		slog.String("status", string(item.Status)),
		slog.String("country_id", item.CountryID),
	)

	return service.repo.FindByID(context, item.ID)
}

/*
UpdateContent applies a submission to an existing aggregate.

Description: Scalar fields present in the payload are updated; every
collection present is fully replaced inside one transaction (delete-all then
re-create). Collections absent from the payload are left untouched. This
full-replace semantic is the contract the editing UI depends on.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - submission: *Submission

Returns:
  - *Content: The updated aggregate, re-read with full projection
  - error: apperr.NotFound for an unknown id, else validation/storage failures
*/
func (service *Service) UpdateContent(context context.Context, id string, submission *Submission) (*Content, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	item, replace, err := service.buildAggregate(context, submission, current.UserID)
	if err != nil {
		return nil, err
	}
	item.ID = current.ID
	item.CountryID = current.CountryID

	// Status changes ride the dedicated transition endpoints, except that a
	// re-submitted form may keep its current value.
	item.Status = current.Status
	if submission.Payload.Status != "" {
		requested := Status(submission.Payload.Status)
		if !requested.IsValid() {
			return nil, apperr.ValidationError("Unknown content status",
				apperr.FieldError{Field: FieldStatus, Message: "must be DRAFT, REVIEW, or PUBLISHED"})
		}
		item.Status = requested
	}

	if err := service.repo.Update(context, item, replace); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.CountryID)
	service.logger.Info("content_updated", slog.String("content_id", id))

	return service.repo.FindByID(context, id)
}

// DeleteContent removes an aggregate and all owned rows. Stored binaries
// are left behind.
func (service *Service) DeleteContent(context context.Context, id string) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context, current.CountryID)
	service.logger.Info("content_deleted", slog.String("content_id", id))
	return nil
}

// # Reads

// GetContent returns one aggregate with full projection.
func (service *Service) GetContent(context context.Context, id string) (*Content, error) {
	return service.repo.FindByID(context, id)
}

// ListPublished returns the public listing, optionally filtered by country,
// newest publication date first. Served through the cache when warm.
func (service *Service) ListPublished(context context.Context, countryID string) ([]*Content, error) {
	if items, ok := service.cache.Get(context, countryID); ok {
		return items, nil
	}

	items, err := service.repo.ListByStatus(context, StatusPublished, countryID)
	if err != nil {
		return nil, err
	}

	service.cache.Set(context, countryID, items)
	return items, nil
}

// ListByStatus backs the admin listings: all statuses when status is empty,
// scoped to one country when countryID is set.
func (service *Service) ListByStatus(context context.Context, status Status, countryID string) ([]*Content, error) {
	return service.repo.ListByStatus(context, status, countryID)
}

// # Lifecycle

// SubmitForReview moves an aggregate into REVIEW from any prior status.
func (service *Service) SubmitForReview(context context.Context, id string) (*Content, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetStatus(context, id, StatusReview); err != nil {
		return nil, err
	}

	// A published item entering review disappears from the public listing.
	service.cache.Invalidate(context, current.CountryID)
	service.logger.Info("content_submitted_for_review", slog.String("content_id", id))

	return service.repo.FindByID(context, id)
}

/*
Decide resolves a review: approval publishes, rejection returns the item to
DRAFT. Either way reviewedat is stamped.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - approve: bool

Returns:
  - *Content: The aggregate after the decision
  - error: apperr.NotFound if the item is missing or not in REVIEW
*/
func (service *Service) Decide(context context.Context, id string, approve bool) (*Content, error) {
	if err := service.repo.Decide(context, id, approve); err != nil {
		return nil, err
	}

	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.CountryID)
	service.logger.Info("content_review_decided",
		slog.String("content_id", id),
		slog.Bool("approved", approve),
	)

	return item, nil
}

// RevertToDraft moves a PUBLISHED aggregate back to DRAFT for re-editing.
// Fails with not-found when the item is not currently published.
func (service *Service) RevertToDraft(context context.Context, id string) (*Content, error) {
	if err := service.repo.RevertToDraft(context, id); err != nil {
		return nil, err
	}

	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, item.CountryID)
	service.logger.Info("content_reverted_to_draft", slog.String("content_id", id))

	return item, nil
}

// # Aggregate Assembly

// buildAggregate turns a submission into a persistable aggregate: parses the
// date, applies the score policy, and resolves every attachment to a stored
// path.
func (service *Service) buildAggregate(context context.Context, submission *Submission, userID string) (*Content, ReplaceSet, error) {
	payload := &submission.Payload
	var replace ReplaceSet

	date, err := parseDate(payload.Date)
	if err != nil {
		return nil, replace, err
	}

	item := &Content{
		Slug:      slug.From(payload.Title),
		Title:     payload.Title,
		Summary:   payload.Summary,
		Author:    payload.Author,
		Date:      date,
		Keywords:  payload.Keywords,
		CountryID: payload.CountryID,
		UserID:    userID,
	}
	if item.Keywords == nil {
		item.Keywords = []string{}
	}

	if payload.Cover != nil {
		path, err := service.resolveRef(context, submission, *payload.Cover)
		if err != nil {
			return nil, replace, err
		}
		item.Cover = path
	}

	if payload.ExistingConditions != nil {
		replace.ExistingConditions = true
		for _, condition := range *payload.ExistingConditions {
			built := ExistingCondition{
				Title:       condition.Title,
				Description: condition.Description,
				Images:      []ConditionImage{},
			}
			for _, ref := range condition.Images {
				path, err := service.resolveRef(context, submission, ref)
				if err != nil {
					return nil, replace, err
				}
				built.Images = append(built.Images, ConditionImage{File: path, Alt: ref.Alt})
			}
			item.ExistingConditions = append(item.ExistingConditions, built)
		}
	}

	if payload.hasDimensions() {
		replace.Dimensions = true
		for _, slot := range payload.dimensionSlots() {
			if slot.Payload == nil {
				continue
			}
			built, err := service.buildDimension(context, submission, slot.Type, slot.Payload)
			if err != nil {
				return nil, replace, err
			}
			item.Dimensions = append(item.Dimensions, built)
		}
	}

	if payload.SupportingDocs != nil {
		replace.SupportingDocs = true
		for _, ref := range *payload.SupportingDocs {
			path, err := service.resolveRef(context, submission, ref)
			if err != nil {
				return nil, replace, err
			}
			item.SupportingDocs = append(item.SupportingDocs, SupportingDoc{Name: ref.Name, File: path})
		}
	}

	if payload.Maps != nil {
		replace.Maps = true
		for _, ref := range *payload.Maps {
			path, err := service.resolveRef(context, submission, ref)
			if err != nil {
				return nil, replace, err
			}
			item.Maps = append(item.Maps, MapImage{Image: path, Alt: ref.Alt})
		}
	}

	if payload.Galleries != nil {
		replace.Galleries = true
		for _, ref := range *payload.Galleries {
			path, err := service.resolveRef(context, submission, ref)
			if err != nil {
				return nil, replace, err
			}
			item.Galleries = append(item.Galleries, GalleryImage{Image: path, Alt: ref.Alt})
		}
	}

	if payload.VideoLinks != nil {
		replace.VideoLinks = true
		for _, link := range *payload.VideoLinks {
			if link.URL == "" {
				continue
			}
			item.VideoLinks = append(item.VideoLinks, VideoLink{URL: link.URL})
		}
	}

	return item, replace, nil
}

// buildDimension assembles one dimension slot, applying the score policy.
func (service *Service) buildDimension(context context.Context, submission *Submission, dimensionType DimensionType, payload *DimensionPayload) (Dimension, error) {
	score, err := service.applyScorePolicy(dimensionType, payload.Score)
	if err != nil {
		return Dimension{}, err
	}

	built := Dimension{
		Type:               dimensionType,
		Title:              payload.Title,
		InputMethod:        payload.InputMethod,
		SignificantAspects: payload.SignificantAspects,
		Score:              score,
		GraphImages:        []GraphImage{},
	}
	if built.SignificantAspects == nil {
		built.SignificantAspects = []string{}
	}
	if dimensionType == DimensionOverall {
		built.Narrative = payload.Narrative
	}

	for _, ref := range payload.GraphImages {
		path, err := service.resolveRef(context, submission, ref)
		if err != nil {
			return Dimension{}, err
		}
		built.GraphImages = append(built.GraphImages, GraphImage{File: path, Alt: ref.Alt})
	}

	return built, nil
}

// applyScorePolicy enforces the configured sustainability-score rule.
func (service *Service) applyScorePolicy(dimensionType DimensionType, score float64) (float64, error) {
	inRange := score >= 0 && score <= 100

	switch service.scoreMode {
	case config.ScoreValidationClamp:
		if score < 0 {
			return 0, nil
		}
		if score > 100 {
			return 100, nil
		}
		return score, nil

	case config.ScoreValidationReject:
		if !inRange {
			return 0, apperr.ValidationError("Sustainability score out of range",
				apperr.FieldError{
					Field:   string(dimensionType) + "Dimension." + FieldScore,
					Message: "must be between 0 and 100",
				})
		}
		return score, nil

	default:
		// Off: caller-supplied values are stored as-is.
		return score, nil
	}
}

// resolveRef turns one attachment entry into a stored path. Existing-path
// markers pass through verbatim; fresh uploads are compressed and written.
func (service *Service) resolveRef(context context.Context, submission *Submission, ref AttachmentRef) (string, error) {
	if ref.File != "" {
		return ref.File, nil
	}

	originalName, data, err := submission.Open(ref.Upload)
	if err != nil {
		return "", err
	}

	compressed, err := service.compress(data)
	if err != nil {
		return "", apperr.ValidationError("Uploaded image could not be processed",
			apperr.FieldError{Field: ref.Upload, Message: err.Error()})
	}

	path, err := service.files.Save(context, storage.TimestampName(originalName),
		bytes.NewReader(compressed), int64(len(compressed)))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("content: failed to store upload %q: %w", originalName, err))
	}

	return path, nil
}

// parseDate accepts the date formats the editing UI submits.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, apperr.ValidationError("Unparseable publication date",
		apperr.FieldError{Field: FieldDate, Message: "must be YYYY-MM-DD or RFC 3339"})
}
