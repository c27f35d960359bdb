// Copyright (c) 2026 MangroveNet. All rights reserved.

// White-box service tests: stubs replace the repository, file store, and
// listing cache so the assembly logic is exercised without infrastructure.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/core/country"
	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/config"
)

// # Stubs

type stubRepo struct {
	created     *Content
	updated     *Content
	updatedWith ReplaceSet
	deleted     string
	statusSet   Status
}

func (s *stubRepo) Create(_ context.Context, item *Content) error {
	s.created = item
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id string) (*Content, error) {
	if s.created != nil && s.created.ID == id {
		hydrated := *s.created
		hydrated.Country = &country.Country{ID: hydrated.CountryID}
		return &hydrated, nil
	}
	if s.updated != nil && s.updated.ID == id {
		return s.updated, nil
	}
	return nil, apperr.NotFound("Content")
}

func (s *stubRepo) ListByStatus(_ context.Context, _ Status, _ string) ([]*Content, error) {
	return []*Content{}, nil
}

func (s *stubRepo) Update(_ context.Context, item *Content, replace ReplaceSet) error {
	s.updated = item
	s.updatedWith = replace
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func (s *stubRepo) SetStatus(_ context.Context, _ string, status Status) error {
	s.statusSet = status
	return nil
}

func (s *stubRepo) Decide(_ context.Context, _ string, _ bool) error { return nil }
func (s *stubRepo) RevertToDraft(_ context.Context, _ string) error  { return nil }

type stubFiles struct {
	saved []string
}

func (s *stubFiles) Save(_ context.Context, filename string, reader io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	path := "/uploads/" + filename
	s.saved = append(s.saved, path)
	return path, nil
}

type stubCache struct {
	invalidated []string
}

func (s *stubCache) Get(_ context.Context, _ string) ([]*Content, bool)  { return nil, false }
func (s *stubCache) Set(_ context.Context, _ string, _ []*Content)       {}
func (s *stubCache) Invalidate(_ context.Context, countryID string) {
	s.invalidated = append(s.invalidated, countryID)
}

type serviceFixture struct {
	service *Service
	repo    *stubRepo
	files   *stubFiles
	cache   *stubCache
}

func newFixture(scoreMode string) *serviceFixture {
	fixture := &serviceFixture{
		repo:  &stubRepo{},
		files: &stubFiles{},
		cache: &stubCache{},
	}
	fixture.service = NewService(fixture.repo, fixture.files, fixture.cache, scoreMode,
		slog.New(slog.NewJSONHandler(io.Discard, nil)))

	// Uploads pass through unchanged so tests control the bytes exactly.
	fixture.service.compress = func(data []byte) ([]byte, error) { return data, nil }
	return fixture
}

// newSubmission builds a parsed multipart submission from a payload document
// and named binary parts.
func newSubmission(t *testing.T, payload string, binaries map[string][]byte) *Submission {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("payload", payload))
	for name, data := range binaries {
		part, err := form.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/content", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())

	submission, err := ParseSubmission(request)
	require.NoError(t, err)
	return submission
}

const testCountryID = "0191d2a0-0000-7000-8000-00000000c0de"
const testUserID = "0191d2a0-0000-7000-8000-0000000000aa"

// # Creation

/*
TestCreateContent_RoundTrip verifies the full assembly path: fresh uploads
land in storage and their paths are persisted, existing markers pass through
verbatim, and the listing cache is invalidated for the owning country.
*/
func TestCreateContent_RoundTrip(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	payload := fmt.Sprintf(`{
		"title": "Mangrove conditions, north coast",
		"summary": "Survey results",
		"author": "Field team",
		"date": "2026-03-15",
		"status": "DRAFT",
		"countryId": %q,
		"keywords": ["mangrove", "survey"],
		"existingConditions": [{
			"title": "Shoreline erosion",
			"description": "Accelerating since 2020.",
			"images": [
				{"upload": "cond_0", "alt": "erosion photo"},
				{"file": "/uploads/1700000000-prior.jpg", "alt": "prior survey"}
			]
		}],
		"videoLinks": [{"url": "https://youtu.be/abc"}]
	}`, testCountryID)

	submission := newSubmission(t, payload, map[string][]byte{"cond_0": []byte("img")})

	created, err := fixture.service.CreateContent(context.Background(), testUserID, submission)
	require.NoError(t, err)

	require.NotNil(t, fixture.repo.created)
	persisted := fixture.repo.created

	assert.NotEmpty(t, persisted.ID)
	assert.Equal(t, StatusDraft, persisted.Status)
	assert.Equal(t, testUserID, persisted.UserID)
	assert.Equal(t, "mangrove-conditions-north-coast", persisted.Slug)

	require.Len(t, persisted.ExistingConditions, 1)
	images := persisted.ExistingConditions[0].Images
	require.Len(t, images, 2)
	require.Len(t, fixture.files.saved, 1)
	assert.Equal(t, fixture.files.saved[0], images[0].File)
	assert.Equal(t, "/uploads/1700000000-prior.jpg", images[1].File)

	require.Len(t, persisted.VideoLinks, 1)

	assert.Equal(t, []string{testCountryID}, fixture.cache.invalidated)
	assert.Equal(t, persisted.ID, created.ID)
}

/*
TestCreateContent_RejectsReviewStatus verifies that REVIEW is unreachable
through creation: it only exists via the submit transition.
*/
func TestCreateContent_RejectsReviewStatus(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	payload := fmt.Sprintf(`{
		"title": "t", "summary": "s", "author": "a",
		"date": "2026-01-01", "status": "REVIEW", "countryId": %q
	}`, testCountryID)

	_, err := fixture.service.CreateContent(context.Background(), testUserID, newSubmission(t, payload, nil))

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Nil(t, fixture.repo.created)
}

/*
TestCreateContent_UnparseableDate verifies the date gate fires before any
repository work.
*/
func TestCreateContent_UnparseableDate(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	payload := fmt.Sprintf(`{
		"title": "t", "summary": "s", "author": "a",
		"date": "15/03/2026", "status": "DRAFT", "countryId": %q
	}`, testCountryID)

	_, err := fixture.service.CreateContent(context.Background(), testUserID, newSubmission(t, payload, nil))

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Nil(t, fixture.repo.created)
	assert.Empty(t, fixture.files.saved)
}

// # Score Policy

/*
TestApplyScorePolicy exercises the three configured modes against an
out-of-range score.
*/
func TestApplyScorePolicy(t *testing.T) {
	t.Run("off stores as-is", func(t *testing.T) {
		fixture := newFixture(config.ScoreValidationOff)
		score, err := fixture.service.applyScorePolicy(DimensionEcology, 150)
		require.NoError(t, err)
		assert.Equal(t, 150.0, score)
	})

	t.Run("clamp pins to bounds", func(t *testing.T) {
		fixture := newFixture(config.ScoreValidationClamp)

		high, err := fixture.service.applyScorePolicy(DimensionEcology, 150)
		require.NoError(t, err)
		assert.Equal(t, 100.0, high)

		low, err := fixture.service.applyScorePolicy(DimensionEcology, -3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, low)

		kept, err := fixture.service.applyScorePolicy(DimensionEcology, 72.5)
		require.NoError(t, err)
		assert.Equal(t, 72.5, kept)
	})

	t.Run("reject fails validation", func(t *testing.T) {
		fixture := newFixture(config.ScoreValidationReject)

		_, err := fixture.service.applyScorePolicy(DimensionSocial, 101)
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, "socialDimension.score", appError.Details[0].Field)
	})
}

// # Update Semantics

/*
TestUpdateContent_ReplaceSetReflectsPayload verifies that only collections
present in the payload are flagged for replacement.
*/
func TestUpdateContent_ReplaceSetReflectsPayload(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	// Seed an existing aggregate the update can target.
	existingID := "0191d2a0-0000-7000-8000-0000000000ee"
	fixture.repo.created = &Content{
		ID:        existingID,
		CountryID: testCountryID,
		UserID:    testUserID,
		Status:    StatusDraft,
	}

	payload := `{
		"title": "updated title", "summary": "s", "author": "a",
		"date": "2026-02-02", "status": "DRAFT",
		"maps": [{"file": "/uploads/1700000000-map.png", "alt": "kept"}]
	}`

	_, err := fixture.service.UpdateContent(context.Background(), existingID, newSubmission(t, payload, nil))
	require.NoError(t, err)

	assert.True(t, fixture.repo.updatedWith.Maps)
	assert.False(t, fixture.repo.updatedWith.ExistingConditions)
	assert.False(t, fixture.repo.updatedWith.Dimensions)
	assert.False(t, fixture.repo.updatedWith.Galleries)
	assert.False(t, fixture.repo.updatedWith.VideoLinks)

	require.Len(t, fixture.repo.updated.Maps, 1)
	assert.Equal(t, "/uploads/1700000000-map.png", fixture.repo.updated.Maps[0].Image)
}

/*
TestUpdateContent_UnknownID verifies the 404 path touches nothing.
*/
func TestUpdateContent_UnknownID(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	payload := `{"title": "t", "summary": "s", "author": "a", "date": "2026-01-01", "status": "DRAFT"}`
	_, err := fixture.service.UpdateContent(context.Background(),
		"0191d2a0-0000-7000-8000-00000000dead", newSubmission(t, payload, nil))

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Nil(t, fixture.repo.updated)
	assert.Empty(t, fixture.cache.invalidated)
}

// # Dimensions

/*
TestCreateContent_DimensionAssembly verifies the five named slots plus the
overall synthesis map onto typed dimension records, with the narrative kept
only on the overall.
*/
func TestCreateContent_DimensionAssembly(t *testing.T) {
	fixture := newFixture(config.ScoreValidationOff)

	payload := fmt.Sprintf(`{
		"title": "t", "summary": "s", "author": "a",
		"date": "2026-01-01", "status": "DRAFT", "countryId": %q,
		"ecologyDimension": {"title": "Ecology", "score": 61, "narrative": "ignored"},
		"overallDimension": {"title": "Overall", "score": 58, "narrative": "synthesis text"}
	}`, testCountryID)

	_, err := fixture.service.CreateContent(context.Background(), testUserID, newSubmission(t, payload, nil))
	require.NoError(t, err)

	dimensions := fixture.repo.created.Dimensions
	require.Len(t, dimensions, 2)

	assert.Equal(t, DimensionEcology, dimensions[0].Type)
	assert.Empty(t, dimensions[0].Narrative)

	assert.Equal(t, DimensionOverall, dimensions[1].Type)
	assert.Equal(t, "synthesis text", dimensions[1].Narrative)
}
