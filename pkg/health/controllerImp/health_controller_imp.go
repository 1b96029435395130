package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agriplan/pkg/catalog"
	"agriplan/pkg/logger"
)

type HealthCtrl struct {
	db      *gorm.DB
	cat     *catalog.Catalog
	ruleset string
	started time.Time
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func NewHealthCtrl(db *gorm.DB, cat *catalog.Catalog, ruleset string) *HealthCtrl {
	if cat == nil {
		cat = catalog.Default()
	}
	return &HealthCtrl{db: db, cat: cat, ruleset: ruleset, started: time.Now()}
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health answers 503 when the database does not respond within 800ms.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
		logger.Warn("health check failed", zap.String("database", db.Err))
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     map[string]any{"database": db},
		"catalog":    map[string]int{"crops": len(h.cat.Crops()), "regions": len(h.cat.Regions())},
		"ruleset":    h.ruleset,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
