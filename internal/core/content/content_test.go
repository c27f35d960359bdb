// Copyright (c) 2026 MangroveNet. All rights reserved.

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangrovenet/mangrovenet/internal/core/content"
)

/*
TestDeriveEmbedURL verifies the provider-specific embed transformations and
the pass-through for everything unrecognised.
*/
func TestDeriveEmbedURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "youtube watch link",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:     "youtube watch link with extra params",
			input:    "https://youtube.com/watch?v=abc123&t=42s",
			expected: "https://www.youtube.com/embed/abc123",
		},
		{
			name:     "youtube short link",
			input:    "https://youtu.be/dQw4w9WgXcQ",
			expected: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:     "youtube shorts path",
			input:    "https://www.youtube.com/shorts/xyz789",
			expected: "https://www.youtube.com/embed/xyz789",
		},
		{
			name:     "already an embed link",
			input:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expected: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:     "drive viewer link",
			input:    "https://drive.google.com/file/d/1AbCdEfG/view?usp=sharing",
			expected: "https://drive.google.com/file/d/1AbCdEfG/preview",
		},
		{
			name:     "unrecognised provider untouched",
			input:    "https://vimeo.com/123456",
			expected: "https://vimeo.com/123456",
		},
		{
			name:     "garbage untouched",
			input:    "not a url",
			expected: "not a url",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, content.DeriveEmbedURL(testCase.input))
		})
	}
}

/*
TestStatus_IsValid verifies that only the three live lifecycle states are
recognised. There is no archived state.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, content.StatusDraft.IsValid())
	assert.True(t, content.StatusReview.IsValid())
	assert.True(t, content.StatusPublished.IsValid())

	assert.False(t, content.Status("ARCHIVED").IsValid())
	assert.False(t, content.Status("draft").IsValid())
	assert.False(t, content.Status("").IsValid())
}
