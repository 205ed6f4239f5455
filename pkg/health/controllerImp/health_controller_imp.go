package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Info describes what the process was wired with. Only the database check
// can fail the check; the rest is reported.
type Info struct {
	ConfigSource     string // "defaults" or the override files applied
	Crops            int
	WeatherEnabled   bool
	SchedulerEnabled bool
}

type HealthCtrl struct {
	db   *gorm.DB
	info Info
}

func NewHealthCtrl(db *gorm.DB, info Info) *HealthCtrl { return &HealthCtrl{db: db, info: info} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func pingDB(ctx context.Context, db *gorm.DB) check {
	if db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health answers 503 only when the database is unreachable.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()
	db := pingDB(ctx, h.db)

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"agronomy":  map[string]any{"ok": h.info.Crops > 0, "source": h.info.ConfigSource, "crops": h.info.Crops},
			"weather":   map[string]any{"enabled": h.info.WeatherEnabled},
			"scheduler": map[string]any{"enabled": h.info.SchedulerEnabled},
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
