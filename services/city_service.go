package services

import (
	"buysell_server/repository"
	"buysell_server/structs/tables"
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
)

// GermanCityService is a passthrough over the city store.
type GermanCityService struct {
	logger *gecho.Logger
	cities repository.CityRepository
}

func NewGermanCityService(logger *gecho.Logger, cities repository.CityRepository) *GermanCityService {
	return &GermanCityService{
		logger: logger,
		cities: cities,
	}
}

func (cs *GermanCityService) ListCities(ctx context.Context) ([]tables.GermanCity, error) {
	cities, err := cs.cities.FindAll(ctx)
	if err != nil {
		cs.logger.Error("Failed to list cities", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// GetCityByID returns nil, nil when the city does not exist.
func (cs *GermanCityService) GetCityByID(ctx context.Context, id int64) (*tables.GermanCity, error) {
	city, err := cs.cities.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get city %d: %w", id, err)
	}
	return city, nil
}

func (cs *GermanCityService) SaveCity(ctx context.Context, city *tables.GermanCity) (*tables.GermanCity, error) {
	if err := cs.cities.Save(ctx, city); err != nil {
		cs.logger.Error("Failed to save city", gecho.Field("error", err), gecho.Field("city_id", city.ID))
		return nil, fmt.Errorf("failed to save city: %w", err)
	}

	cs.logger.Info("City saved", gecho.Field("city_id", city.ID), gecho.Field("city_name", city.CityName))
	return city, nil
}

func (cs *GermanCityService) DeleteCity(ctx context.Context, id int64) error {
	if err := cs.cities.DeleteByID(ctx, id); err != nil {
		cs.logger.Error("Failed to delete city", gecho.Field("error", err), gecho.Field("city_id", id))
		return fmt.Errorf("failed to delete city %d: %w", id, err)
	}

	cs.logger.Info("City deleted", gecho.Field("city_id", id))
	return nil
}
