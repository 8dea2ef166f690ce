package structs

import "buysell_server/structs/tables"

// UploadedFile is one multipart file part, already read into memory.
type UploadedFile struct {
	Name             string // form field name
	OriginalFileName string
	ContentType      string
	Size             int64
	Bytes            []byte
}

// ProductForm is the non-file part of the create/update multipart form.
type ProductForm struct {
	Title       string  `validate:"required,min=2,max=200"`
	Description string  `validate:"max=5000"`
	Price       int64   `validate:"gte=0"`
	CityIDs     []int64 `validate:"dive,gt=0"`
}

type SearchResponse struct {
	Products []tables.Product `json:"products"`
	Message  string           `json:"message"`
}
