// Copyright (c) 2026 MangroveNet. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangrovenet/mangrovenet/pkg/slug"
)

/*
TestFrom verifies the slug pipeline against the kinds of titles authors
actually submit: accented place names, punctuation, and stray whitespace.
*/
func TestFrom(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain title",
			input:    "Mangrove Conditions North Coast",
			expected: "mangrove-conditions-north-coast",
		},
		{
			name:     "accented place name",
			input:    "Cà Mau Peninsula Survey",
			expected: "ca-mau-peninsula-survey",
		},
		{
			name:     "punctuation and digits",
			input:    "Site #12: Restoration (Phase 2)",
			expected: "site-12-restoration-phase-2",
		},
		{
			name:     "surrounding whitespace",
			input:    "  Delta Monitoring  ",
			expected: "delta-monitoring",
		},
		{
			name:     "consecutive separators collapse",
			input:    "Tidal -- Flats // Update",
			expected: "tidal-flats-update",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, slug.From(testCase.input))
		})
	}
}
