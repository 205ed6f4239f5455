package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agronome/pkg/harvest/repository"
	"agronome/pkg/harvest/service"
	"agronome/pkg/holding"
)

const maxUpload = 10 << 20

type HarvestCtrl struct{ svc service.HarvestService }

func New(svc service.HarvestService) *HarvestCtrl { return &HarvestCtrl{svc} }

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, holding.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "holding not found"})
	case service.IsInvalid(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func uidOf(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func (h *HarvestCtrl) Create(c echo.Context) error {
	var row service.Row
	if err := c.Bind(&row); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	row.HoldingID = holding.FromContext(c).HoldingID
	out, err := h.svc.Record(uidOf(c), row)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *HarvestCtrl) List(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	out, err := h.svc.List(uidOf(c), repository.Filter{
		HoldingID: holding.FromContext(c).HoldingID,
		CropType:  c.QueryParam("crop"),
		Year:      year,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type importReq struct {
	Harvests []service.Row `json:"harvests"`
}

func (h *HarvestCtrl) Import(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil || req.Harvests == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": `expected {"harvests": [...]}`})
	}
	return c.JSON(http.StatusCreated, h.svc.Import(uidOf(c), req.Harvests))
}

func (h *HarvestCtrl) ImportXLSX(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "multipart field 'file' required"})
	}
	if fh.Size > maxUpload {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	defer f.Close()
	res, err := h.svc.ImportXLSX(uidOf(c), f)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, res)
}

func queryUint(c echo.Context, name string) (uint, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return uint(n), err == nil
}

func (h *HarvestCtrl) Statistics(c echo.Context) error {
	hid, ok := queryUint(c, "holding_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad holding_id"})
	}
	year, _ := strconv.Atoi(c.QueryParam("year"))
	out, err := h.svc.Statistics(uidOf(c), repository.Filter{HoldingID: hid, CropType: c.QueryParam("crop"), Year: year})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *HarvestCtrl) Forecast(c echo.Context) error {
	hid, ok := queryUint(c, "holding_id")
	crop := c.QueryParam("crop")
	if !ok || hid == 0 || crop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "holding_id and crop are required"})
	}
	out, err := h.svc.Forecast(uidOf(c), hid, crop)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
