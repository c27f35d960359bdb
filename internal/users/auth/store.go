// Copyright (c) 2026 MangroveNet. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for account identity.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated account entity (without Country)
		  - error: apperr.NotFound if no such account exists
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID returns the account with the given ID, with its Country hydrated.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated account entity including Country
		  - error: apperr.NotFound if no such account exists
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Unique-constraint or connectivity failures
	*/
	Create(context context.Context, user *User) error
}
