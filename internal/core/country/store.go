package country

import "context"

// Repository defines the data access contract for country reference data.
type Repository interface {
	ListCountries(context context.Context) ([]*Country, error)
	GetCountryByID(context context.Context, id string) (*Country, error)
	UpdateCountry(context context.Context, country *Country) error
}
