package country

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangrovenet/mangrovenet/internal/platform/middleware"
	requestutil "github.com/mangrovenet/mangrovenet/internal/platform/request"
	"github.com/mangrovenet/mangrovenet/internal/platform/respond"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCountries)
	router.Get("/{id}", handler.getCountry)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Put("/{id}", handler.updateCountry)
	})
}

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	countries, err := handler.service.ListCountries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countries)
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if validator.UUID("id", id); validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	country, err := handler.service.GetCountry(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, country)
}

type updateCountryRequest struct {
	Name              string  `json:"name"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	LandArea          string  `json:"landArea"`
	LandAreaNum       float64 `json:"landAreaNum"`
	ForestArea        string  `json:"forestArea"`
	ForestAreaNum     float64 `json:"forestAreaNum"`
	MangroveArea      string  `json:"mangroveArea"`
	MangroveAreaNum   float64 `json:"mangroveAreaNum"`
	Challenges        string  `json:"challenges"`
	Recommendation    string  `json:"recommendation"`
	ProgramActivities string  `json:"programActivities"`
	Policy            string  `json:"policy"`
}

func (handler *Handler) updateCountry(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input updateCountryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", id).Required(FieldName, input.Name)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	country, err := handler.service.UpdateCountry(request.Context(), &Country{
		ID:                id,
		Name:              input.Name,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		LandArea:          input.LandArea,
		LandAreaNum:       input.LandAreaNum,
		ForestArea:        input.ForestArea,
		ForestAreaNum:     input.ForestAreaNum,
		MangroveArea:      input.MangroveArea,
		MangroveAreaNum:   input.MangroveAreaNum,
		Challenges:        input.Challenges,
		Recommendation:    input.Recommendation,
		ProgramActivities: input.ProgramActivities,
		Policy:            input.Policy,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, country)
}
