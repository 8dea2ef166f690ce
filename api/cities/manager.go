package cities

import (
	"buysell_server/api/middleware"
	"buysell_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// CityService manages the reference list of german cities.
type CityService interface {
	ListCities(ctx context.Context) ([]tables.GermanCity, error)
	GetCityByID(ctx context.Context, id int64) (*tables.GermanCity, error)
	SaveCity(ctx context.Context, city *tables.GermanCity) (*tables.GermanCity, error)
	DeleteCity(ctx context.Context, id int64) error
}

type CityRoutesManager struct {
	logger      *gecho.Logger
	cityService CityService
	mw          *middleware.Middleware
}

func NewCityRoutesManager(logger *gecho.Logger, cityService CityService, mw *middleware.Middleware) *CityRoutesManager {
	return &CityRoutesManager{
		logger:      logger,
		cityService: cityService,
		mw:          mw,
	}
}

func (crm *CityRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cities", func(r chi.Router) {
		r.Get("/", crm.ListCities)
		r.Get("/{id}", crm.GetCity)

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(crm.mw.UserAuthMiddleware)
			r.Use(crm.mw.AdminAuthMiddleware)
			r.Use(crm.mw.CSRFMiddleware())
			r.Post("/", crm.CreateCity)
			r.Put("/{id}", crm.UpdateCity)
			r.Delete("/{id}", crm.DeleteCity)
		})
	})
}
