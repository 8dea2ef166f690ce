package structs

type CityRequest struct {
	CityName string `json:"city_name" validate:"required,min=2,max=100"`
}
