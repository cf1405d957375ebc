package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"wastewise/internal/service"
)

// WasteHandler handles waste entry endpoints.
type WasteHandler struct {
	wasteService service.WasteService
}

// NewWasteHandler creates a new waste handler.
func NewWasteHandler(wasteService service.WasteService) *WasteHandler {
	return &WasteHandler{wasteService: wasteService}
}

// AddWasteRequest represents a new waste entry.
type AddWasteRequest struct {
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"number"`
	ImageURL    *string         `json:"image_url" validate:"omitempty,url"`
}

// AddWasteResponse acknowledges a created entry.
type AddWasteResponse struct {
	Message string `json:"message"`
	EntryID uint   `json:"entryId"`
}

// AddWaste godoc
// @Summary Log a waste entry
// @Tags waste
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddWasteRequest true "Waste entry"
// @Success 201 {object} AddWasteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /waste/addWaste [post]
func (h *WasteHandler) AddWaste(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req AddWasteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.wasteService.CreateEntry(c.Request().Context(), identity, service.CreateWasteEntryInput{
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, AddWasteResponse{Message: "Waste entry added successfully", EntryID: entry.ID})
}

// ListEntries godoc
// @Summary List my waste entries
// @Tags waste
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WasteEntry
// @Failure 401 {object} errors.ErrorResponse
// @Router /waste-entries [get]
func (h *WasteHandler) ListEntries(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	entries, err := h.wasteService.ListEntries(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
