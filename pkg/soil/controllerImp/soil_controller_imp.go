package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agronome/entities"
	"agronome/pkg/holding"
	repo "agronome/pkg/soil/repository"
)

type SoilCtrl struct{ repo repo.SoilRepository }

func New(repo repo.SoilRepository) *SoilCtrl { return &SoilCtrl{repo} }

type analysisReq struct {
	ParcelID       *uint    `json:"parcel_id"`
	SampleDate     string   `json:"sample_date"`
	PH             *float64 `json:"ph"`
	MoisturePct    *float64 `json:"moisture_pct"`
	Texture        string   `json:"texture"`
	NitrogenMgKg   *float64 `json:"nitrogen_mg_kg"`
	PhosphorusMgKg *float64 `json:"phosphorus_mg_kg"`
	PotassiumMgKg  *float64 `json:"potassium_mg_kg"`
	Observations   string   `json:"observations"`
}

func (r analysisReq) validate() []string {
	var errs []string
	if r.PH != nil && (*r.PH < 0 || *r.PH > 14) {
		errs = append(errs, "ph must be between 0 and 14")
	}
	if r.MoisturePct != nil && (*r.MoisturePct < 0 || *r.MoisturePct > 100) {
		errs = append(errs, "moisture_pct must be between 0 and 100")
	}
	for _, n := range []struct {
		name string
		v    *float64
	}{{"nitrogen_mg_kg", r.NitrogenMgKg}, {"phosphorus_mg_kg", r.PhosphorusMgKg}, {"potassium_mg_kg", r.PotassiumMgKg}} {
		if n.v != nil && *n.v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", n.name))
		}
	}
	return errs
}

func (h *SoilCtrl) Create(c echo.Context) error {
	hd := holding.FromContext(c)
	var req analysisReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": strings.Join(errs, "; ")})
	}
	d := time.Now()
	if req.SampleDate != "" {
		dd, err := time.Parse("2006-01-02", req.SampleDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "sample_date must be YYYY-MM-DD"})
		}
		d = dd
	}
	a := &entities.SoilAnalysis{
		HoldingID: hd.HoldingID, ParcelID: req.ParcelID, SampleDate: d,
		PH: req.PH, MoisturePct: req.MoisturePct, Texture: req.Texture,
		NitrogenMgKg: req.NitrogenMgKg, PhosphorusMgKg: req.PhosphorusMgKg, PotassiumMgKg: req.PotassiumMgKg,
		Observations: req.Observations,
	}
	if err := h.repo.Create(a); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *SoilCtrl) List(c echo.Context) error {
	hd := holding.FromContext(c)
	var (
		out []entities.SoilAnalysis
		err error
	)
	if p := c.QueryParam("parcel_id"); p != "" {
		pid, perr := strconv.ParseUint(p, 10, 64)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad parcel_id"})
		}
		out, err = h.repo.ListByParcel(hd.HoldingID, uint(pid))
	} else {
		out, err = h.repo.ListByHolding(hd.HoldingID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
