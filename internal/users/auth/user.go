// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package auth implements the user identity layer of the network.

It defines the account entity for country administrators and network-wide
reviewers, credential verification, and session resolution.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no external dependencies and encapsulate all business rules related to
accounts and access.
*/
package auth

import (
	"time"

	"github.com/mangrovenet/mangrovenet/internal/core/country"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
)

// # Account Status

// AccountStatus represents whether an account may sign in.
type AccountStatus string

const (
	// StatusActive accounts can authenticate and manage content.
	StatusActive AccountStatus = "ACTIVE"

	// StatusInactive accounts are locked out without being deleted.
	StatusInactive AccountStatus = "INACTIVE"
)

// # Domain Entities

// User represents an administrator account in the network.
//
// Every account belongs to exactly one country; SUPER_ADMIN accounts
// additionally review and publish submissions from every country.
type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Institution  string        `json:"institution,omitempty"`
	Position     string        `json:"position,omitempty"`
	Role         sec.UserRole  `json:"role"`
	Status       AccountStatus `json:"status"`
	CountryID    string        `json:"countryId"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Country is hydrated on session resolution (/auth/me).
	Country *country.Country `json:"country,omitempty"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldAccessToken = "token"
	FieldUser        = "user"
)
