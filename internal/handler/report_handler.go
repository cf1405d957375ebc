package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wastewise/internal/service"
)

// ReportHandler handles dashboard and report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary godoc
// @Summary Dashboard summary for the caller
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Summary
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	summary, err := h.reportService.Summary(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// WasteByCategory godoc
// @Summary Waste quantity per category
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.CategoryTotal
// @Router /reports/waste [get]
func (h *ReportHandler) WasteByCategory(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	totals, err := h.reportService.WasteByCategory(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

// DonationsByDay godoc
// @Summary Donations created per day
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.DailyDonations
// @Router /reports/donations [get]
func (h *ReportHandler) DonationsByDay(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	days, err := h.reportService.DonationsByDay(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, days)
}

// Dashboard godoc
// @Summary Record counts for the caller
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	dashboard, err := h.reportService.Dashboard(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Activities godoc
// @Summary Recent activity feed
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Activity
// @Router /dashboard/activities [get]
func (h *ReportHandler) Activities(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	activities, err := h.reportService.RecentActivities(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}
