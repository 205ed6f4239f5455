package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agronome/pkg/holding"
	"agronome/pkg/sensor"
	"agronome/pkg/sensor/repository"
	"agronome/pkg/sensor/service"
)

type SensorCtrl struct{ svc service.SensorService }

func New(svc service.SensorService) *SensorCtrl { return &SensorCtrl{svc} }

func fail(c echo.Context, err error) error {
	var inv *service.InvalidError
	switch {
	case errors.Is(err, sensor.ErrUnknownSensor):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, holding.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "holding not found"})
	case errors.Is(err, sensor.ErrInactiveSensor), errors.As(err, &inv):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func uidOf(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func (h *SensorCtrl) Register(c echo.Context) error {
	var req service.RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Register(uidOf(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SensorCtrl) List(c echo.Context) error {
	out, err := h.svc.List(uidOf(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SensorCtrl) Ingest(c echo.Context) error {
	var req service.ReadingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Ingest(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SensorCtrl) Readings(c echo.Context) error {
	f := repository.ReadingFilter{
		SensorID:   c.QueryParam("sensor_id"),
		SensorType: c.QueryParam("sensor_type"),
	}
	if v := c.QueryParam("holding_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad holding_id"})
		}
		f.HoldingID = uint(id)
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be 1..1000"})
		}
		f.Limit = n
	}
	out, err := h.svc.Recent(uidOf(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
