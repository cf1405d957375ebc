package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports that the process is up.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Readyz pings the database.
func (h *HealthHandler) Readyz(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ready")
}
