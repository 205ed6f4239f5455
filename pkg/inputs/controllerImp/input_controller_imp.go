package controllerImp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agronome/entities"
	"agronome/pkg/holding"
	repo "agronome/pkg/inputs/repository"
)

var inputTypes = map[string]bool{"fertilizer": true, "pesticide": true, "seed": true, "amendment": true}

type InputCtrl struct{ repo repo.InputRepository }

func New(repo repo.InputRepository) *InputCtrl { return &InputCtrl{repo} }

type inputReq struct {
	ParcelID    *uint   `json:"parcel_id"`
	InputType   string  `json:"input_type"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	AppliedOn   string  `json:"applied_on"`
	Crop        string  `json:"crop"`
}

func (h *InputCtrl) Create(c echo.Context) error {
	hd := holding.FromContext(c)
	var req inputReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	kind := strings.ToLower(strings.TrimSpace(req.InputType))
	if !inputTypes[kind] {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "input_type must be fertilizer, pesticide, seed or amendment"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "quantity must be > 0"})
	}
	d := time.Now()
	if req.AppliedOn != "" {
		dd, err := time.Parse("2006-01-02", req.AppliedOn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "applied_on must be YYYY-MM-DD"})
		}
		d = dd
	}
	in := &entities.InputApplication{
		HoldingID: hd.HoldingID, ParcelID: req.ParcelID, InputType: kind, ProductName: req.ProductName,
		Quantity: req.Quantity, Unit: req.Unit, AppliedOn: d, Crop: strings.ToLower(req.Crop),
	}
	if err := h.repo.Create(in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *InputCtrl) List(c echo.Context) error {
	hd := holding.FromContext(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.repo.Recent(hd.HoldingID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
