package country

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const countryColumns = `
	id, name, latitude, longitude,
	landarea, landareanum, forestarea, forestareanum,
	mangrovearea, mangroveareanum,
	challenges, recommendation, programactivities, policy,
	createdat, updatedat`

func scanCountry(row pgx.Row) (*Country, error) {
	c := &Country{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Latitude, &c.Longitude,
		&c.LandArea, &c.LandAreaNum, &c.ForestArea, &c.ForestAreaNum,
		&c.MangroveArea, &c.MangroveAreaNum,
		&c.Challenges, &c.Recommendation, &c.ProgramActivities, &c.Policy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListCountries(context context.Context) ([]*Country, error) {
	query := `SELECT ` + countryColumns + ` FROM core.country ORDER BY name ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_countries")
	}
	defer rows.Close()

	var countries []*Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_country")
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

func (repository *PostgresRepository) GetCountryByID(context context.Context, id string) (*Country, error) {
	query := `SELECT ` + countryColumns + ` FROM core.country WHERE id = $1`

	c, err := scanCountry(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Country")
		}
		return nil, dberr.Wrap(err, "get_country")
	}

	return c, nil
}

func (repository *PostgresRepository) UpdateCountry(context context.Context, country *Country) error {
	query := `
		UPDATE core.country SET
			name = $2, latitude = $3, longitude = $4,
			landarea = $5, landareanum = $6,
			forestarea = $7, forestareanum = $8,
			mangrovearea = $9, mangroveareanum = $10,
			challenges = $11, recommendation = $12,
			programactivities = $13, policy = $14,
			updatedat = $15
		WHERE id = $1`

	now := time.Now().UTC()
	tag, err := repository.db.Exec(context, query,
		country.ID, country.Name, country.Latitude, country.Longitude,
		country.LandArea, country.LandAreaNum,
		country.ForestArea, country.ForestAreaNum,
		country.MangroveArea, country.MangroveAreaNum,
		country.Challenges, country.Recommendation,
		country.ProgramActivities, country.Policy,
		now,
	)
	if err != nil {
		return dberr.Wrap(err, "update_country")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Country")
	}

	country.UpdatedAt = now
	return nil
}
