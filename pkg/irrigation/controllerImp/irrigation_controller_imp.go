package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agronome/pkg/holding"
	"agronome/pkg/irrigation/service"
)

type IrrigationCtrl struct{ svc service.IrrigationService }

func New(svc service.IrrigationService) *IrrigationCtrl { return &IrrigationCtrl{svc} }

// Advise always answers 200 with at least one advisory; weather failures
// are reported in weather_error.
func (h *IrrigationCtrl) Advise(c echo.Context) error {
	var req service.Request
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
		}
	}
	res := h.svc.Advise(c.Request().Context(), holding.FromContext(c), req)
	return c.JSON(http.StatusOK, res)
}
