package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agronome/entities"
	repo "agronome/pkg/climatedata/repository"
	"agronome/pkg/holding"
)

type ClimateCtrl struct{ repo repo.ClimateRepository }

func New(repo repo.ClimateRepository) *ClimateCtrl { return &ClimateCtrl{repo} }

type windowReq struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	MinTempC    *float64 `json:"min_temp_c"`
	MaxTempC    *float64 `json:"max_temp_c"`
	RainfallMM  *float64 `json:"rainfall_mm"`
	PeriodLabel string   `json:"period_label"`
}

func (h *ClimateCtrl) Create(c echo.Context) error {
	hd := holding.FromContext(c)
	var req windowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
	}
	end := start
	if req.EndDate != "" {
		if end, err = time.Parse("2006-01-02", req.EndDate); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_date must be YYYY-MM-DD"})
		}
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_date before start_date"})
	}
	if req.RainfallMM != nil && *req.RainfallMM < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rainfall_mm must be >= 0"})
	}
	if req.MinTempC != nil && req.MaxTempC != nil && *req.MinTempC > *req.MaxTempC {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "min_temp_c above max_temp_c"})
	}
	w := &entities.ClimateWindow{
		HoldingID: hd.HoldingID, StartDate: start, EndDate: end,
		MinTempC: req.MinTempC, MaxTempC: req.MaxTempC, RainfallMM: req.RainfallMM, PeriodLabel: req.PeriodLabel,
	}
	if err := h.repo.Create(w); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *ClimateCtrl) List(c echo.Context) error {
	hd := holding.FromContext(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.repo.Recent(hd.HoldingID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
