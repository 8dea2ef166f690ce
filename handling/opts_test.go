package handling

import (
	"bytes"
	"buysell_server/lib"
	"buysell_server/structs"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUploadCfg = &structs.UploadConfig{MaxRequestBytes: 1 << 20, MaxFileBytes: 1 << 10, MaxFiles: 2}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/products/x", nil), "id", tt.raw)

			id, err := ParseIDParam(r, "id")
			if tt.wantErr {
				var ve *lib.ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseTitleParam(t *testing.T) {
	assert.Nil(t, ParseTitleParam(httptest.NewRequest(http.MethodGet, "/products", nil)))

	title := ParseTitleParam(httptest.NewRequest(http.MethodGet, "/products?title=", nil))
	require.NotNil(t, title)
	assert.Equal(t, "", *title)

	title = ParseTitleParam(httptest.NewRequest(http.MethodGet, "/products?title=Bike", nil))
	require.NotNil(t, title)
	assert.Equal(t, "Bike", *title)
}

func TestParseSearchParams(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		cityID, keyword, err := ParseSearchParams(httptest.NewRequest(http.MethodGet, "/products/search", nil))

		require.NoError(t, err)
		assert.Nil(t, cityID)
		assert.Nil(t, keyword)
	})

	t.Run("both", func(t *testing.T) {
		cityID, keyword, err := ParseSearchParams(httptest.NewRequest(http.MethodGet, "/products/search?city_id=5&keyword=Bike", nil))

		require.NoError(t, err)
		require.NotNil(t, cityID)
		require.NotNil(t, keyword)
		assert.Equal(t, int64(5), *cityID)
		assert.Equal(t, "Bike", *keyword)
	})

	t.Run("empty keyword is kept", func(t *testing.T) {
		_, keyword, err := ParseSearchParams(httptest.NewRequest(http.MethodGet, "/products/search?keyword=", nil))

		require.NoError(t, err)
		require.NotNil(t, keyword)
		assert.Equal(t, "", *keyword)
	})

	t.Run("bad city", func(t *testing.T) {
		_, _, err := ParseSearchParams(httptest.NewRequest(http.MethodGet, "/products/search?city_id=berlin", nil))

		var ve *lib.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

type formFile struct {
	name    string
	content []byte
}

func multipartRequest(t *testing.T, fields map[string][]string, files []formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(FilesField, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/products", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestParseProductForm(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		r := multipartRequest(t, map[string][]string{
			"title":       {" Bike "},
			"description": {"red"},
			"price":       {"1500"},
			"city_ids":    {"5", "7,9"},
		}, []formFile{{"bike.png", []byte("\x89PNG\r\n\x1a\nrest")}, {"empty.png", nil}})

		form, files, err := ParseProductForm(r, testUploadCfg)

		require.NoError(t, err)
		assert.Equal(t, "Bike", form.Title)
		assert.Equal(t, int64(1500), form.Price)
		assert.Equal(t, []int64{5, 7, 9}, form.CityIDs)
		require.Len(t, files, 1)
		assert.Equal(t, "bike.png", files[0].OriginalFileName)
	})

	t.Run("missing title", func(t *testing.T) {
		r := multipartRequest(t, map[string][]string{"price": {"10"}}, nil)

		_, _, err := ParseProductForm(r, testUploadCfg)

		var ve *lib.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Errors[0].Field)
	})

	t.Run("bad price", func(t *testing.T) {
		r := multipartRequest(t, map[string][]string{"title": {"Bike"}, "price": {"cheap"}}, nil)

		_, _, err := ParseProductForm(r, testUploadCfg)

		var ve *lib.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "price", ve.Errors[0].Field)
	})

	t.Run("too many files", func(t *testing.T) {
		r := multipartRequest(t, map[string][]string{"title": {"Bike"}}, []formFile{
			{"a.png", []byte("a")}, {"b.png", []byte("b")}, {"c.png", []byte("c")},
		})

		_, _, err := ParseProductForm(r, testUploadCfg)

		assert.ErrorIs(t, err, lib.ErrTooManyFiles)
	})

	t.Run("not multipart", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{}"))
		r.Header.Set("Content-Type", "application/json")

		_, _, err := ParseProductForm(r, testUploadCfg)

		var ve *lib.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}
