// Copyright (c) 2026 MangroveNet. All rights reserved.

package content_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/core/content"
	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
)

// buildSubmissionRequest assembles a multipart request with a payload part
// and optional binary parts keyed by part name.
func buildSubmissionRequest(t *testing.T, payload string, binaries map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	require.NoError(t, form.WriteField("payload", payload))
	for name, data := range binaries {
		part, err := form.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/content", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	return request
}

/*
TestParseSubmission_DropsUnmarkedEntries verifies that attachment entries
carrying neither an upload nor an existing-file marker vanish silently.
*/
func TestParseSubmission_DropsUnmarkedEntries(t *testing.T) {
	payload := `{
		"title": "Mangrove restoration in the delta",
		"maps": [
			{"upload": "map_0", "alt": "site overview"},
			{"alt": "orphaned entry without markers"},
			{"file": "/uploads/1700000000-old-map.png", "alt": "kept"}
		]
	}`

	request := buildSubmissionRequest(t, payload, map[string][]byte{"map_0": []byte("fake")})

	submission, err := content.ParseSubmission(request)
	require.NoError(t, err)

	require.NotNil(t, submission.Payload.Maps)
	maps := *submission.Payload.Maps
	require.Len(t, maps, 2)
	assert.Equal(t, "map_0", maps[0].Upload)
	assert.Equal(t, "/uploads/1700000000-old-map.png", maps[1].File)
}

/*
TestParseSubmission_GraphImageCap verifies that a dimension with three graph
images is rejected before any side effect.
*/
func TestParseSubmission_GraphImageCap(t *testing.T) {
	payload := `{
		"title": "Over the cap",
		"ecologyDimension": {
			"title": "Ecology",
			"graphImages": [
				{"upload": "g0"}, {"upload": "g1"}, {"upload": "g2"}
			]
		}
	}`

	request := buildSubmissionRequest(t, payload, nil)

	_, err := content.ParseSubmission(request)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, "ecologyDimension.graphImages", appError.Details[0].Field)
}

/*
TestParseSubmission_SignificantAspectCap verifies the three-aspect bound.
*/
func TestParseSubmission_SignificantAspectCap(t *testing.T) {
	payload := `{
		"title": "Too many aspects",
		"socialDimension": {
			"title": "Social",
			"significantAspects": ["a", "b", "c", "d"]
		}
	}`

	request := buildSubmissionRequest(t, payload, nil)

	_, err := content.ParseSubmission(request)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, "socialDimension.significantAspects", appError.Details[0].Field)
}

/*
TestParseSubmission_MissingPayloadPart verifies that a form without the
payload part is rejected.
*/
func TestParseSubmission_MissingPayloadPart(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("unrelated", "value"))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/content", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())

	_, err := content.ParseSubmission(request)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestSubmission_Open verifies binary part retrieval, including the error for
an upload marker pointing at a part that was never sent.
*/
func TestSubmission_Open(t *testing.T) {
	payload := `{"title": "t", "cover": {"upload": "cover"}}`
	request := buildSubmissionRequest(t, payload, map[string][]byte{"cover": []byte("jpegbytes")})

	submission, err := content.ParseSubmission(request)
	require.NoError(t, err)

	filename, data, err := submission.Open("cover")
	require.NoError(t, err)
	assert.Equal(t, "cover.jpg", filename)
	assert.Equal(t, []byte("jpegbytes"), data)

	_, _, err = submission.Open("missing_part")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
}

/*
TestParseSubmission_AbsentCollectionsStayNil verifies that collections the
payload never mentioned decode as nil, which is what keeps them untouched on
update.
*/
func TestParseSubmission_AbsentCollectionsStayNil(t *testing.T) {
	request := buildSubmissionRequest(t, `{"title": "scalars only", "galleries": []}`, nil)

	submission, err := content.ParseSubmission(request)
	require.NoError(t, err)

	assert.Nil(t, submission.Payload.Maps)
	assert.Nil(t, submission.Payload.ExistingConditions)
	require.NotNil(t, submission.Payload.Galleries)
	assert.Empty(t, *submission.Payload.Galleries)
}
