package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"wastewise/internal/service"
)

// DonationHandler handles food donation endpoints.
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonationRequest represents a new food donation.
type CreateDonationRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"number"`
	DonorName   string          `json:"donor_name" validate:"required,max=100"`
	Contact     string          `json:"contact" validate:"required,max=100"`
}

// CreateDonationResponse acknowledges a created donation.
type CreateDonationResponse struct {
	Message    string `json:"message"`
	DonationID uint   `json:"donationId"`
}

// Create godoc
// @Summary Offer a food donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDonationRequest true "Donation"
// @Success 201 {object} CreateDonationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /food-donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	donation, err := h.donationService.Create(c.Request().Context(), identity, service.CreateDonationInput{
		Description: req.Description,
		Quantity:    req.Quantity,
		DonorName:   req.DonorName,
		Contact:     req.Contact,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateDonationResponse{Message: "Donation added successfully", DonationID: donation.ID})
}

// Mine godoc
// @Summary List my donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FoodDonation
// @Router /food-donations [get]
func (h *DonationHandler) Mine(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	donations, err := h.donationService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, donations)
}

// Pending godoc
// @Summary List donations awaiting pickup
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FoodDonation
// @Failure 403 {object} errors.ErrorResponse
// @Router /food-donations/pending [get]
func (h *DonationHandler) Pending(c echo.Context) error {
	donations, err := h.donationService.ListPending(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, donations)
}

// History godoc
// @Summary List donations I collected
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FoodDonation
// @Router /food-donations/history [get]
func (h *DonationHandler) History(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	donations, err := h.donationService.History(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, donations)
}

// MarkCollected godoc
// @Summary Mark a donation as collected
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /food-donations/mark-collected/{id} [post]
func (h *DonationHandler) MarkCollected(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.donationService.MarkCollected(c.Request().Context(), identity, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Donation marked as collected"})
}
