package handling

import (
	"buysell_server/lib"
	"buysell_server/structs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// FilesField is the multipart field carrying product images.
const FilesField = "files"

func invalidParam(field, message string) *lib.ValidationError {
	return &lib.ValidationError{Errors: []lib.FieldError{{Field: field, Message: message}}}
}

// ParseIDParam reads a positive integer URL parameter.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name, "must be a positive integer")
	}
	return id, nil
}

// ParseTitleParam returns the title query parameter, or nil when it is absent.
// An empty but present title is kept so it can match nothing.
func ParseTitleParam(r *http.Request) *string {
	query := r.URL.Query()
	if !query.Has("title") {
		return nil
	}
	title := query.Get("title")
	return &title
}

// ParseSearchParams reads city_id and keyword. Either may be nil.
func ParseSearchParams(r *http.Request) (*int64, *string, error) {
	query := r.URL.Query()

	var cityID *int64
	if raw := strings.TrimSpace(query.Get("city_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, nil, invalidParam("city_id", "must be a positive integer")
		}
		cityID = &id
	}

	var keyword *string
	if query.Has("keyword") {
		kw := query.Get("keyword")
		keyword = &kw
	}

	return cityID, keyword, nil
}

// ParseProductForm reads the multipart create/update form. Empty file parts
// are dropped, so a form without usable images yields no files.
func ParseProductForm(r *http.Request, uploadCfg *structs.UploadConfig) (*structs.ProductForm, []*structs.UploadedFile, error) {
	if err := r.ParseMultipartForm(uploadCfg.MaxRequestBytes); err != nil {
		return nil, nil, invalidParam("form", "must be a valid multipart form")
	}

	form := &structs.ProductForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil, invalidParam("price", "must be a number")
		}
		form.Price = price
	}

	cityIDs, err := parseCityIDs(r.MultipartForm.Value["city_ids"])
	if err != nil {
		return nil, nil, err
	}
	form.CityIDs = cityIDs

	if err := lib.ValidateStruct(form); err != nil {
		return nil, nil, err
	}

	files, err := lib.ReadUploadedFiles(r.MultipartForm, FilesField, uploadCfg.MaxFiles, uploadCfg.MaxFileBytes)
	if err != nil {
		return nil, nil, err
	}

	return form, files, nil
}

// parseCityIDs accepts repeated values and comma separated lists.
func parseCityIDs(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range splitAndTrim(v) {
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, invalidParam("city_ids", "must be a list of city ids")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace efficiently
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
