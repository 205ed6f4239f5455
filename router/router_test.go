package router_test

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
	"agronome/pkg/agronomy"
	authCtrlImp "agronome/pkg/auth/controllerImp"
	climateCtrlImp "agronome/pkg/climatedata/controllerImp"
	climateRepoImp "agronome/pkg/climatedata/repositoryImp"
	harvestCtrlImp "agronome/pkg/harvest/controllerImp"
	harvestRepoImp "agronome/pkg/harvest/repositoryImp"
	harvestSvcImp "agronome/pkg/harvest/serviceImp"
	healthCtrlImp "agronome/pkg/health/controllerImp"
	holdingCtrlImp "agronome/pkg/holding/controllerImp"
	holdingRepoImp "agronome/pkg/holding/repositoryImp"
	holdingSvcImp "agronome/pkg/holding/serviceImp"
	inputCtrlImp "agronome/pkg/inputs/controllerImp"
	inputRepoImp "agronome/pkg/inputs/repositoryImp"
	irrigationCtrlImp "agronome/pkg/irrigation/controllerImp"
	irrigationSvcImp "agronome/pkg/irrigation/serviceImp"
	kbCtrlImp "agronome/pkg/kb/controllerImp"
	kbRepoImp "agronome/pkg/kb/repositoryImp"
	kbServiceImp "agronome/pkg/kb/serviceImp"
	"agronome/pkg/middleware"
	recCtrlImp "agronome/pkg/recommendation/controllerImp"
	recRepoImp "agronome/pkg/recommendation/repositoryImp"
	recSvcImp "agronome/pkg/recommendation/serviceImp"
	sensorCtrlImp "agronome/pkg/sensor/controllerImp"
	sensorRepoImp "agronome/pkg/sensor/repositoryImp"
	sensorSvcImp "agronome/pkg/sensor/serviceImp"
	soilCtrlImp "agronome/pkg/soil/controllerImp"
	soilRepoImp "agronome/pkg/soil/repositoryImp"
	"agronome/router"
)

func build(t *testing.T, enableAuth bool) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	agro := agronomy.Default()

	hRepo := holdingRepoImp.New(db)
	soRepo := soilRepoImp.New(db)
	clRepo := climateRepoImp.New(db)
	inRepo := inputRepoImp.New(db)
	kbSvc := kbServiceImp.New(kbRepoImp.New(db))
	snSvc := sensorSvcImp.NewSensorService(sensorRepoImp.New(db), hRepo)
	rcSvc := recSvcImp.NewRecommendationService(recSvcImp.Deps{
		Recs: recRepoImp.New(db), Holdings: hRepo, Soil: soRepo, Climate: clRepo, Inputs: inRepo,
		Engine: agronomy.NewEngine(agro), Sensors: snSvc, KB: kbSvc,
	})

	e := echo.New()
	return router.New(e, router.Controllers{
		Auth:           authCtrlImp.NewAuthController(),
		Health:         healthCtrlImp.NewHealthCtrl(db, healthCtrlImp.Info{ConfigSource: "defaults", Crops: len(agro.Crops())}),
		Holding:        holdingCtrlImp.New(holdingSvcImp.NewHoldingService(hRepo)),
		Soil:           soilCtrlImp.New(soRepo),
		Climate:        climateCtrlImp.New(clRepo),
		Inputs:         inputCtrlImp.New(inRepo),
		Harvest:        harvestCtrlImp.New(harvestSvcImp.NewHarvestService(harvestRepoImp.New(db), hRepo)),
		Recommendation: recCtrlImp.New(rcSvc),
		Irrigation:     irrigationCtrlImp.New(irrigationSvcImp.NewIrrigationService(agronomy.NewAdvisor(agro), nil)),
		Sensor:         sensorCtrlImp.New(snSvc),
		KB:             kbCtrlImp.New(kbSvc, nil, 0),
	}, hRepo, enableAuth)
}

func call(e *echo.Echo, method, path, uid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.AddCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid})
		req.Header.Set(middleware.UIDHeader, uid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFarmFlow(t *testing.T) {
	e := build(t, false)

	rec := call(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodPost, "/holdings", "farmer", `{"name":"Kpalime plot","area_ha":2,"main_crop":"maize"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(e, http.MethodPost, "/holdings/1/soil-analyses", "farmer", `{"sample_date":"2025-05-01","ph":5.4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(e, http.MethodPost, "/kb/ingest", "farmer", `{"title":"Liming acid soils","tags":"amendment","text":"Spread lime before the rains.","source_url":"https://example.org/lime"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(e, http.MethodPost, "/holdings/1/recommendations/generate", "farmer", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var batch struct {
		Recommendations []struct {
			Category string `json:"category"`
			Priority string `json:"priority"`
		} `json:"recommendations"`
		References []struct {
			Title string `json:"title"`
		} `json:"references"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	require.Len(t, batch.Recommendations, 1)
	assert.Equal(t, "Amendment", batch.Recommendations[0].Category)
	assert.Equal(t, "high", batch.Recommendations[0].Priority)
	require.Len(t, batch.References, 1)
	assert.Equal(t, "Liming acid soils", batch.References[0].Title)

	rec = call(e, http.MethodPost, "/holdings/1/irrigation-advice", "farmer", `{"current":{"temperature":24,"humidity":70,"rainfall":0}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"irrigation_recommended"`)

	rec = call(e, http.MethodGet, "/holdings/1", "neighbour", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(e, http.MethodGet, "/whoami", "farmer", "")
	assert.JSONEq(t, `{"uid":"farmer"}`, rec.Body.String())
}

func TestAuthEnabled(t *testing.T) {
	e := build(t, true)

	rec := call(e, http.MethodGet, "/holdings", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/devlogin", "", "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/holdings", "farmer", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
