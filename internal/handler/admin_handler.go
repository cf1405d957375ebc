package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wastewise/internal/errors"
	"wastewise/internal/model"
	"wastewise/internal/service"
)

// AdminHandler handles administrator endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats godoc
// @Summary System-wide counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Users godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	role := c.QueryParam("role")
	if role != "" && !model.ValidRole(role) {
		return respondError(c, errors.Validation("unknown role %q", role))
	}
	users, err := h.adminService.Users(c.Request().Context(), role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Activity godoc
// @Summary Latest activity log records
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records (default 50)"
// @Success 200 {array} model.ActivityLog
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	logs, err := h.adminService.Activity(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
