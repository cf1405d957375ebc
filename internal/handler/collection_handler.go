package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wastewise/internal/service"
)

// CollectionHandler handles pickup request endpoints.
type CollectionHandler struct {
	collectionService service.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// RequestCollectionRequest asks for a pickup of one of the caller's entries.
type RequestCollectionRequest struct {
	WasteEntryID FlexibleID `json:"waste_entry_id" validate:"required" swaggertype:"integer"`
	Description  string     `json:"description"`
}

// RequestCollectionResponse acknowledges a created pickup request.
type RequestCollectionResponse struct {
	Message      string `json:"message"`
	CollectionID uint   `json:"collectionId"`
}

// RequestCollection godoc
// @Summary Request a pickup for a waste entry
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RequestCollectionRequest true "Pickup request"
// @Success 201 {object} RequestCollectionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /request-collection [post]
func (h *CollectionHandler) RequestCollection(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req RequestCollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionService.RequestCollection(c.Request().Context(), identity, uint(req.WasteEntryID), req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, RequestCollectionResponse{
		Message:      "Collection request submitted",
		CollectionID: collection.ID,
	})
}

// MyCollections godoc
// @Summary List my pickup requests
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WasteCollection
// @Router /collections [get]
func (h *CollectionHandler) MyCollections(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	collections, err := h.collectionService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collections)
}

// PickupRequests godoc
// @Summary List pending pickups
// @Tags collector
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PendingPickup
// @Failure 403 {object} errors.ErrorResponse
// @Router /collector/pickup-requests [get]
func (h *CollectionHandler) PickupRequests(c echo.Context) error {
	pickups, err := h.collectionService.ListPending(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pickups)
}

// MarkCollected godoc
// @Summary Mark a pickup as collected
// @Tags collector
// @Produce json
// @Security BearerAuth
// @Param id path int true "Collection request ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /collector/mark-collected/{id} [post]
func (h *CollectionHandler) MarkCollected(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.collectionService.MarkCollected(c.Request().Context(), identity, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Marked as collected"})
}

// History godoc
// @Summary List pickups I completed
// @Tags collector
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WasteCollection
// @Router /collector/history [get]
func (h *CollectionHandler) History(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	collections, err := h.collectionService.History(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collections)
}
