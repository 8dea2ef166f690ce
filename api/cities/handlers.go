package cities

import (
	"buysell_server/handling"
	"buysell_server/lib"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (crm *CityRoutesManager) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := crm.cityService.ListCities(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to list cities", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(cities), gecho.Send())
}

func (crm *CityRoutesManager) GetCity(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid city id", crm.logger, w)
		return
	}

	city, err := crm.cityService.GetCityByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to get city", crm.logger, w)
		return
	}
	if city == nil {
		gecho.NotFound(w, gecho.WithMessage(fmt.Sprintf("city with id: %d does not exist", id)), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(city), gecho.Send())
}

func (crm *CityRoutesManager) CreateCity(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CityRequest](r)
	if err != nil {
		crm.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the city information"), gecho.WithData(err), gecho.Send())
		return
	}

	city, err := crm.cityService.SaveCity(r.Context(), &tables.GermanCity{CityName: body.CityName})
	if err != nil {
		handling.RespondError(err, "Failed to save city", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("City saved"), gecho.WithData(city), gecho.Send())
}

func (crm *CityRoutesManager) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid city id", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CityRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the city information"), gecho.WithData(err), gecho.Send())
		return
	}

	city, err := crm.cityService.SaveCity(r.Context(), &tables.GermanCity{ID: id, CityName: body.CityName})
	if err != nil {
		handling.RespondError(err, "Failed to save city", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("City updated"), gecho.WithData(city), gecho.Send())
}

func (crm *CityRoutesManager) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid city id", crm.logger, w)
		return
	}

	if err := crm.cityService.DeleteCity(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete city", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("City deleted"), gecho.Send())
}
