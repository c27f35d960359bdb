package country

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCountries(context context.Context) ([]*Country, error) {
	return service.repo.ListCountries(context)
}

func (service *Service) GetCountry(context context.Context, id string) (*Country, error) {
	return service.repo.GetCountryByID(context, id)
}

// UpdateCountry applies narrative and figure changes to an existing country.
// The set of countries is fixed reference data, so there is no create path.
func (service *Service) UpdateCountry(context context.Context, country *Country) (*Country, error) {
	if err := service.repo.UpdateCountry(context, country); err != nil {
		return nil, err
	}

	service.logger.Info("country_updated", slog.String("country_id", country.ID))
	return country, nil
}
