// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package content defines the core publishing aggregate of the MangroveNet platform.

A Content item is one published unit about a country's mangrove ecosystem:
existing-condition narratives, the five sustainability dimensions plus an
overall synthesis, supporting documents, maps, galleries, and video links.

Core Responsibility:

  - Aggregate: One root row owning every nested collection; created and
    replaced transactionally as a whole.
  - Lifecycle: DRAFT ⇄ REVIEW → PUBLISHED ⇄ DRAFT, arbitrated by
    network-wide reviewers.
  - Media: Nested entities reference stored binaries by path only; the
    binary pipeline lives in platform/storage and platform/imaging.

This package acts as the source of truth for all content-related data models.
*/
package content

import (
	"net/url"
	"strings"
	"time"

	"github.com/mangrovenet/mangrovenet/internal/core/country"
)

// # Lifecycle

// Status represents the publication state of a content item.
type Status string

const (
	// StatusDraft is the authoring state: visible only to administrators.
	StatusDraft Status = "DRAFT"

	// StatusReview means the item awaits a reviewer decision.
	StatusReview Status = "REVIEW"

	// StatusPublished items are visible to the public.
	StatusPublished Status = "PUBLISHED"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished:
		return true
	}
	return false
}

// # Sustainability Dimensions

// DimensionType tags one of the five fixed dimension slots, or the overall
// synthesis.
type DimensionType string

const (
	DimensionEcology       DimensionType = "ecology"
	DimensionSocial        DimensionType = "social"
	DimensionEconomy       DimensionType = "economy"
	DimensionInstitutional DimensionType = "institutional"
	DimensionTechnology    DimensionType = "technology"
	DimensionOverall       DimensionType = "overall"
)

// DimensionTypes lists the five per-aspect slots in presentation order.
// The overall synthesis is handled separately.
var DimensionTypes = []DimensionType{
	DimensionEcology,
	DimensionSocial,
	DimensionEconomy,
	DimensionInstitutional,
	DimensionTechnology,
}

// # Core Entities

// Content is the central aggregate of the MangroveNet domain.
//
// All nested collections are owned: they are created with the root in one
// transaction, fully replaced on update, and cascade on delete.
type Content struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Author     string     `json:"author"`
	Date       time.Time  `json:"date"`
	Cover      string     `json:"cover,omitempty"`
	Keywords   []string   `json:"keywords"`
	Status     Status     `json:"status"`
	CountryID  string     `json:"countryId"`
	UserID     string     `json:"userId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ReviewedAt *time.Time `json:"reviewedAt"`

	ExistingConditions []ExistingCondition `json:"existingConditions"`
	Dimensions         []Dimension         `json:"dimensions"`
	SupportingDocs     []SupportingDoc     `json:"supportingDocs"`
	Maps               []MapImage          `json:"maps"`
	Galleries          []GalleryImage      `json:"galleries"`
	VideoLinks         []VideoLink         `json:"videoLinks"`

	// Country is hydrated on single-item reads and published listings.
	Country *country.Country `json:"country,omitempty"`
}

// ExistingCondition is one narrative section describing the current state of
// an ecosystem aspect, with its own image strip.
type ExistingCondition struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Images      []ConditionImage `json:"images"`
}

// ConditionImage references one stored binary attached to a condition.
//
// The stored column is the internal path; the wire field is "file".
type ConditionImage struct {
	ID   string `json:"id"`
	File string `json:"file"`
	Alt  string `json:"alt"`
}

// Dimension is one sustainability dimension record. The five fixed slots and
// the overall synthesis share this shape; Narrative is only populated on the
// overall record.
type Dimension struct {
	ID                 string        `json:"id"`
	Type               DimensionType `json:"type"`
	Title              string        `json:"title"`
	InputMethod        string        `json:"inputMethod"`
	SignificantAspects []string      `json:"significantAspects"`
	Score              float64       `json:"score"`
	Narrative          string        `json:"narrative,omitempty"`
	GraphImages        []GraphImage  `json:"graphImages"`
}

// GraphImage is a chart rendering attached to a dimension (at most two:
// conceptually a spider chart plus a summary table).
type GraphImage struct {
	ID   string `json:"id"`
	File string `json:"file"`
	Alt  string `json:"alt"`
}

// SupportingDoc is a downloadable attachment (reports, datasets).
type SupportingDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}

// MapImage is a stored map rendering.
type MapImage struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

// GalleryImage is a photo in the item's public gallery.
type GalleryImage struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

// VideoLink is an external video reference. EmbedURL is derived at read
// time, never stored.
type VideoLink struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	EmbedURL string `json:"embedUrl"`
}

// # Embed Derivation

/*
DeriveEmbedURL converts a shared video URL into its embeddable form.

Description: Recognises the two providers content editors actually paste:
YouTube (watch and short-link forms become /embed/) and Google Drive
(viewer links become /preview). Unrecognised URLs are returned unchanged so
the client can decide how to render them.

Parameters:
  - raw: string (The URL as stored)

Returns:
  - string: The embeddable URL, or raw when no rule matches
*/
func DeriveEmbedURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

	switch host {
	case "youtube.com", "m.youtube.com":
		if id := parsed.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
		if strings.HasPrefix(parsed.Path, "/shorts/") {
			if id := strings.Trim(strings.TrimPrefix(parsed.Path, "/shorts/"), "/"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
		if strings.HasPrefix(parsed.Path, "/embed/") {
			return raw
		}

	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}

	case "drive.google.com":
		// /file/d/<id>/view → /file/d/<id>/preview
		if strings.HasPrefix(parsed.Path, "/file/d/") {
			rest := strings.TrimPrefix(parsed.Path, "/file/d/")
			if id, _, _ := strings.Cut(rest, "/"); id != "" {
				return "https://drive.google.com/file/d/" + id + "/preview"
			}
		}
	}

	return raw
}

// # Field Identifiers

// Global field names for validation and payload mapping.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldSummary   = "summary"
	FieldAuthor    = "author"
	FieldDate      = "date"
	FieldStatus    = "status"
	FieldCountryID = "countryId"
	FieldPayload   = "payload"
	FieldApprove   = "approve"
	FieldScore     = "score"
)
