// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package comment implements public feedback on published content.

Comments are anonymous by design: visitors may leave a name and an email but
neither is required, and no account is involved. Moderation is a hard delete
reserved for network-wide reviewers.
*/
package comment

import "time"

// AnonymousName is recorded when a visitor leaves the name blank.
const AnonymousName = "Anonymous"

// Comment is a public remark attached to one content item.
type Comment struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Field names used by validation.
const (
	FieldContentID = "contentId"
	FieldText      = "text"
	FieldEmail     = "email"
)
