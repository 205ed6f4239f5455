package controllerImp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agronome/database"
	"agronome/entities"
	"agronome/pkg/holding"
	holdingRepo "agronome/pkg/holding/repositoryImp"
	"agronome/pkg/inputs/controllerImp"
	"agronome/pkg/inputs/repositoryImp"
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	hr := holdingRepo.New(db)
	require.NoError(t, hr.Create(&entities.Holding{UserID: "u", Name: "h"}))

	ctrl := controllerImp.New(repositoryImp.New(db))
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { c.Set("uid", "u"); return next(c) }
	})
	g := e.Group("/holdings/:id", holding.Guard(hr))
	g.POST("/inputs", ctrl.Create)
	g.GET("/inputs", ctrl.List)
	return e
}

func post(e *echo.Echo, body string) int {
	req := httptest.NewRequest(http.MethodPost, "/holdings/1/inputs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestInputs_CreateAndList(t *testing.T) {
	e := setup(t)
	require.Equal(t, http.StatusCreated, post(e, `{"input_type":"Fertilizer","product_name":"NPK 15-15-15","quantity":50,"unit":"kg","applied_on":"2025-02-01"}`))
	require.Equal(t, http.StatusCreated, post(e, `{"input_type":"seed","quantity":10,"unit":"kg","applied_on":"2025-04-01","crop":"Maize"}`))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/holdings/1/inputs", nil))
	var out []entities.InputApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "seed", out[0].InputType)
	assert.Equal(t, "maize", out[0].Crop)
	assert.Equal(t, "fertilizer", out[1].InputType)
}

func TestInputs_Validation(t *testing.T) {
	e := setup(t)
	assert.Equal(t, http.StatusBadRequest, post(e, `{"input_type":"water","quantity":1}`))
	assert.Equal(t, http.StatusBadRequest, post(e, `{"input_type":"seed","quantity":0}`))
	assert.Equal(t, http.StatusBadRequest, post(e, `{"input_type":"seed","quantity":1,"applied_on":"yesterday"}`))
}
