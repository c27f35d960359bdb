// Copyright (c) 2026 MangroveNet. All rights reserved.

package content

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
)

// # Submission Contract
//
// A content submission is one multipart/form-data request. The "payload"
// part carries a single JSON document describing the whole aggregate; every
// attachment entry inside it references binaries by part name instead of
// embedding them:
//
//   - "upload": the name of a binary part in the same form. The binary is
//     compressed and written to storage, and the resulting path persisted.
//   - "file": a previously stored path, passed through verbatim. This is how
//     a client keeps an unmodified attachment while the collection it sits
//     in is wholesale-replaced.
//
// Entries carrying neither marker are silently dropped. Cardinality is
// checked up front, before any file or database work.

// AttachmentRef is one attachment entry inside the payload document.
type AttachmentRef struct {
	Upload string `json:"upload,omitempty"`
	File   string `json:"file,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Name   string `json:"name,omitempty"`
}

// empty reports whether the entry carries neither marker.
func (ref AttachmentRef) empty() bool {
	return ref.Upload == "" && ref.File == ""
}

// ConditionPayload describes one existing-condition section.
type ConditionPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []AttachmentRef `json:"images"`
}

// DimensionPayload describes one sustainability dimension. Narrative is only
// meaningful on the overall synthesis.
type DimensionPayload struct {
	Title              string          `json:"title"`
	InputMethod        string          `json:"inputMethod"`
	SignificantAspects []string        `json:"significantAspects"`
	Score              float64         `json:"score"`
	Narrative          string          `json:"narrative"`
	GraphImages        []AttachmentRef `json:"graphImages"`
}

// VideoLinkPayload carries one external video URL.
type VideoLinkPayload struct {
	URL string `json:"url"`
}

// Payload is the JSON document inside the "payload" part.
//
// Collection fields are pointers so an absent collection (leave untouched on
// update) is distinguishable from a present-but-empty one (replace with
// nothing).
type Payload struct {
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Author    string         `json:"author"`
	Date      string         `json:"date"`
	Status    string         `json:"status"`
	CountryID string         `json:"countryId"`
	Keywords  []string       `json:"keywords"`
	Cover     *AttachmentRef `json:"cover"`

	ExistingConditions *[]ConditionPayload `json:"existingConditions"`

	EcologyDimension       *DimensionPayload `json:"ecologyDimension"`
	SocialDimension        *DimensionPayload `json:"socialDimension"`
	EconomyDimension       *DimensionPayload `json:"economyDimension"`
	InstitutionalDimension *DimensionPayload `json:"institutionalDimension"`
	TechnologyDimension    *DimensionPayload `json:"technologyDimension"`
	OverallDimension       *DimensionPayload `json:"overallDimension"`

	SupportingDocs *[]AttachmentRef    `json:"supportingDocs"`
	Maps           *[]AttachmentRef    `json:"maps"`
	Galleries      *[]AttachmentRef    `json:"galleries"`
	VideoLinks     *[]VideoLinkPayload `json:"videoLinks"`
}

// dimensionSlots pairs each payload dimension with its type tag, in
// presentation order.
func (payload *Payload) dimensionSlots() []struct {
	Type    DimensionType
	Payload *DimensionPayload
} {
	return []struct {
		Type    DimensionType
		Payload *DimensionPayload
	}{
		{DimensionEcology, payload.EcologyDimension},
		{DimensionSocial, payload.SocialDimension},
		{DimensionEconomy, payload.EconomyDimension},
		{DimensionInstitutional, payload.InstitutionalDimension},
		{DimensionTechnology, payload.TechnologyDimension},
		{DimensionOverall, payload.OverallDimension},
	}
}

// hasDimensions reports whether the payload carried any dimension slot.
func (payload *Payload) hasDimensions() bool {
	for _, slot := range payload.dimensionSlots() {
		if slot.Payload != nil {
			return true
		}
	}
	return false
}

// # Parsing

// Submission is a decoded multipart content submission: the validated
// payload document plus access to its binary parts.
type Submission struct {
	Payload Payload

	form *multipart.Form
}

/*
ParseSubmission decodes and validates a multipart content submission.

Description: Parses the form within the configured memory budget, decodes
the "payload" JSON part, enforces cardinality caps (at most two graph images
per dimension, at most three significant aspects), and drops attachment
entries that carry neither an upload nor an existing-file marker. No file or
database side effects occur here.

Parameters:
  - request: *http.Request (Content-Type: multipart/form-data)

Returns:
  - *Submission: The decoded submission
  - error: apperr.ValidationError describing every violated constraint
*/
func ParseSubmission(request *http.Request) (*Submission, error) {
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return nil, apperr.ValidationError("Request body must be multipart/form-data")
	}

	raw := request.FormValue(FieldPayload)
	if raw == "" {
		return nil, apperr.ValidationError("Missing required form part",
			apperr.FieldError{Field: FieldPayload, Message: "is required"})
	}

	submission := &Submission{form: request.MultipartForm}
	if err := json.Unmarshal([]byte(raw), &submission.Payload); err != nil {
		return nil, apperr.ValidationError("Malformed payload JSON",
			apperr.FieldError{Field: FieldPayload, Message: "must be a valid JSON document"})
	}

	if err := submission.validateCardinality(); err != nil {
		return nil, err
	}
	submission.prune()

	return submission, nil
}

// validateCardinality enforces the fixed caps before any side effects.
func (submission *Submission) validateCardinality() error {
	var details []apperr.FieldError

	for _, slot := range submission.Payload.dimensionSlots() {
		if slot.Payload == nil {
			continue
		}
		if len(slot.Payload.GraphImages) > constants.MaxGraphImagesPerDimension {
			details = append(details, apperr.FieldError{
				Field:   string(slot.Type) + "Dimension.graphImages",
				Message: fmt.Sprintf("at most %d entries allowed", constants.MaxGraphImagesPerDimension),
			})
		}
		if len(slot.Payload.SignificantAspects) > constants.MaxSignificantAspects {
			details = append(details, apperr.FieldError{
				Field:   string(slot.Type) + "Dimension.significantAspects",
				Message: fmt.Sprintf("at most %d entries allowed", constants.MaxSignificantAspects),
			})
		}
	}

	if len(details) > 0 {
		return apperr.ValidationError("Submission exceeds collection limits", details...)
	}
	return nil
}

// prune drops attachment entries with neither marker from every collection.
func (submission *Submission) prune() {
	payload := &submission.Payload

	if payload.Cover != nil && payload.Cover.empty() {
		payload.Cover = nil
	}

	if payload.ExistingConditions != nil {
		conditions := *payload.ExistingConditions
		for i := range conditions {
			conditions[i].Images = pruneRefs(conditions[i].Images)
		}
	}

	for _, slot := range payload.dimensionSlots() {
		if slot.Payload != nil {
			slot.Payload.GraphImages = pruneRefs(slot.Payload.GraphImages)
		}
	}

	if payload.SupportingDocs != nil {
		pruned := pruneRefs(*payload.SupportingDocs)
		payload.SupportingDocs = &pruned
	}
	if payload.Maps != nil {
		pruned := pruneRefs(*payload.Maps)
		payload.Maps = &pruned
	}
	if payload.Galleries != nil {
		pruned := pruneRefs(*payload.Galleries)
		payload.Galleries = &pruned
	}
}

func pruneRefs(refs []AttachmentRef) []AttachmentRef {
	kept := make([]AttachmentRef, 0, len(refs))
	for _, ref := range refs {
		if !ref.empty() {
			kept = append(kept, ref)
		}
	}
	return kept
}

// # Binary Access

/*
Open reads the named binary part into memory.

Parameters:
  - partName: string (The name an attachment entry's "upload" field points at)

Returns:
  - string: The client-supplied original filename
  - []byte: The part's content
  - error: apperr.ValidationError if no such part exists
*/
func (submission *Submission) Open(partName string) (string, []byte, error) {
	headers := submission.form.File[partName]
	if len(headers) == 0 {
		return "", nil, apperr.ValidationError("Referenced binary part is missing",
			apperr.FieldError{Field: partName, Message: "no multipart file with this name"})
	}

	part, err := headers[0].Open()
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("multipart: failed to open part %q: %w", partName, err))
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("multipart: failed to read part %q: %w", partName, err))
	}

	return headers[0].Filename, data, nil
}
