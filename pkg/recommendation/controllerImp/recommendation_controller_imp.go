package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agronome/entities"
	"agronome/pkg/holding"
	"agronome/pkg/recommendation/repository"
	"agronome/pkg/recommendation/repositoryImp"
	"agronome/pkg/recommendation/service"
)

type RecCtrl struct{ svc service.RecommendationService }

func New(svc service.RecommendationService) *RecCtrl { return &RecCtrl{svc} }

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositoryImp.ErrNotFound), errors.Is(err, holding.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "recommendation not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func uidOf(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func (h *RecCtrl) Generate(c echo.Context) error {
	b, err := h.svc.Generate(holding.FromContext(c).HoldingID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *RecCtrl) List(c echo.Context) error {
	var f repository.Filter
	if v := c.QueryParam("parcel_id"); v != "" {
		pid, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad parcel_id"})
		}
		p := uint(pid)
		f.ParcelID = &p
	}
	if st := c.QueryParam("status"); st != "" {
		if !entities.ValidRecStatus(st) {
			return fail(c, service.ErrInvalidStatus)
		}
		f.Status = st
	}
	out, err := h.svc.List(holding.FromContext(c).HoldingID, f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecCtrl) Get(c echo.Context) error {
	id, err := holding.ParamID(c, "rid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad recommendation id"})
	}
	rec, err := h.svc.Get(uidOf(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecCtrl) PatchStatus(c echo.Context) error {
	id, err := holding.ParamID(c, "rid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad recommendation id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	rec, err := h.svc.SetStatus(uidOf(c), id, body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecCtrl) Delete(c echo.Context) error {
	id, err := holding.ParamID(c, "rid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad recommendation id"})
	}
	if err := h.svc.Delete(uidOf(c), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
