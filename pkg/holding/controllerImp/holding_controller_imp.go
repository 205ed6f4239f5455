package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agronome/entities"
	"agronome/pkg/holding"
	"agronome/pkg/holding/service"
)

type HoldingCtrl struct{ svc service.HoldingService }

func New(svc service.HoldingService) *HoldingCtrl { return &HoldingCtrl{svc} }

type createReq struct {
	Name      string   `json:"name"`
	AreaHa    float64  `json:"area_ha"`
	MainCrop  string   `json:"main_crop"`
	Region    string   `json:"region"`
	District  string   `json:"district"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *HoldingCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.CreateHolding(&entities.Holding{
		UserID: uid, Name: req.Name, AreaHa: req.AreaHa, MainCrop: req.MainCrop,
		Region: req.Region, District: req.District, Latitude: req.Latitude, Longitude: req.Longitude,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *HoldingCtrl) Get(c echo.Context) error {
	if hd := holding.FromContext(c); hd != nil {
		return c.JSON(http.StatusOK, hd)
	}
	uid, _ := c.Get("uid").(string)
	id, err := holding.ParamID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	out, err := h.svc.GetHoldingByID(id, uid)
	if errors.Is(err, holding.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *HoldingCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	out, err := h.svc.ListHoldings(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
