package holding

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agronome/entities"
)

const ctxKey = "holding"

// Finder is the lookup Guard needs; the holding repository satisfies it.
type Finder interface {
	FindByID(id uint, uid string) (*entities.Holding, error)
}

func ParamID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("bad id")
	}
	return uint(v), nil
}

// Guard resolves :id to a holding owned by the current uid and stores it in
// the context. Unknown or foreign holdings are a 404.
func Guard(f Finder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := ParamID(c, "id")
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad holding id"})
			}
			uid, _ := c.Get("uid").(string)
			h, err := f.FindByID(id, uid)
			if errors.Is(err, ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "holding not found"})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}
			c.Set(ctxKey, h)
			return next(c)
		}
	}
}

// FromContext returns the holding loaded by Guard.
func FromContext(c echo.Context) *entities.Holding {
	h, _ := c.Get(ctxKey).(*entities.Holding)
	return h
}
