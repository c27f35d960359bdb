// Copyright (c) 2026 MangroveNet. All rights reserved.

// PostgreSQL implementation of the identity storage layer.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangrovenet/mangrovenet/internal/core/country"
	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `
	id, username, passwordhash, firstname, lastname, email, phone,
	institution, position, role, status, countryid, createdat, updatedat`

// scanUser maps a user row onto the domain entity.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Institution,
		&user.Position,
		&user.Role,
		&user.Status,
		&user.CountryID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by username: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves an account by primary key with its Country hydrated.

Description: Joins the owning country so session resolution can return the
caller's reference data in a single round-trip.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated account entity including Country
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `
		SELECT
			u.id, u.username, u.passwordhash, u.firstname, u.lastname, u.email, u.phone,
			u.institution, u.position, u.role, u.status, u.countryid, u.createdat, u.updatedat,
			c.id, c.name, c.latitude, c.longitude,
			c.landarea, c.landareanum, c.forestarea, c.forestareanum,
			c.mangrovearea, c.mangroveareanum,
			c.challenges, c.recommendation, c.programactivities, c.policy,
			c.createdat, c.updatedat
		FROM users.account u
		JOIN core.country c ON c.id = u.countryid
		WHERE u.id = $1`

	user := &User{Country: &country.Country{}}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Institution,
		&user.Position,
		&user.Role,
		&user.Status,
		&user.CountryID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Country.ID,
		&user.Country.Name,
		&user.Country.Latitude,
		&user.Country.Longitude,
		&user.Country.LandArea,
		&user.Country.LandAreaNum,
		&user.Country.ForestArea,
		&user.Country.ForestAreaNum,
		&user.Country.MangroveArea,
		&user.Country.MangroveAreaNum,
		&user.Country.Challenges,
		&user.Country.Recommendation,
		&user.Country.ProgramActivities,
		&user.Country.Policy,
		&user.Country.CreatedAt,
		&user.Country.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by id: %w", err)
	}

	return user, nil
}

/*
Create persists a new account record.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Unique-constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, passwordhash, firstname, lastname, email, phone,
			institution, position, role, status, countryid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Institution,
		user.Position,
		user.Role,
		user.Status,
		user.CountryID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	// A duplicate username surfaces as a unique violation, which callers
	// should see as a conflict rather than a server fault.
	return dberr.Wrap(err, "create_user")
}
