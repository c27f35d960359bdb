// Copyright (c) 2026 MangroveNet. All rights reserved.

package content

import "context"

// # Content Data Access

// Repository defines the data access contract for the content aggregate.
type Repository interface {

	/*
		Create persists a new aggregate: the root row and every owned
		collection, in one transaction.

		Parameters:
		  - context: context.Context
		  - content: *Content (Fully built aggregate; file paths already resolved)

		Returns:
		  - error: Storage or constraint failures; nothing persists on failure
	*/
	Create(context context.Context, content *Content) error

	/*
		FindByID returns one aggregate with every owned collection and the
		owning country hydrated.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Content: The hydrated aggregate
		  - error: apperr.NotFound if no such row exists
	*/
	FindByID(context context.Context, id string) (*Content, error)

	/*
		ListByStatus returns aggregates in the given status with full nested
		includes, optionally scoped to one country, newest date first.

		Parameters:
		  - context: context.Context
		  - status: Status ("" lists every status)
		  - countryID: string ("" lists every country)

		Returns:
		  - []*Content: Hydrated aggregates
		  - error: Database retrieval failures
	*/
	ListByStatus(context context.Context, status Status, countryID string) ([]*Content, error)

	/*
		Update rewrites the root row's scalar fields and fully replaces every
		owned collection flagged in replace, all in one transaction.

		Parameters:
		  - context: context.Context
		  - content: *Content (Target ID, updated scalars, replacement collections)
		  - replace: ReplaceSet (Which collections the submission included)

		Returns:
		  - error: apperr.NotFound if the row is missing, else storage failures
	*/
	Update(context context.Context, content *Content, replace ReplaceSet) error

	/*
		Delete removes the aggregate. Owned rows cascade via foreign keys;
		stored binaries are not touched.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if no row matched
	*/
	Delete(context context.Context, id string) error

	/*
		SetStatus moves the aggregate to the given status unconditionally.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - status: Status

		Returns:
		  - error: apperr.NotFound if no row matched
	*/
	SetStatus(context context.Context, id string, status Status) error

	/*
		Decide resolves a review: approve moves REVIEW → PUBLISHED, reject
		moves REVIEW → DRAFT. Both stamp reviewedat. The update is
		conditional on the row currently being in REVIEW.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - approve: bool

		Returns:
		  - error: apperr.NotFound if the row is missing or not in REVIEW
	*/
	Decide(context context.Context, id string, approve bool) error

	/*
		RevertToDraft moves PUBLISHED → DRAFT so the owner can re-edit.
		Conditional on the row currently being PUBLISHED.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if the row is missing or not PUBLISHED
	*/
	RevertToDraft(context context.Context, id string) error
}

// ReplaceSet flags which owned collections a submission carried. A collection
// absent from the payload is left untouched; a present one is fully replaced,
// even when empty.
type ReplaceSet struct {
	ExistingConditions bool
	Dimensions         bool
	SupportingDocs     bool
	Maps               bool
	Galleries          bool
	VideoLinks         bool
}

// ReplaceAll marks every collection for replacement, used on create.
func ReplaceAll() ReplaceSet {
	return ReplaceSet{
		ExistingConditions: true,
		Dimensions:         true,
		SupportingDocs:     true,
		Maps:               true,
		Galleries:          true,
		VideoLinks:         true,
	}
}
