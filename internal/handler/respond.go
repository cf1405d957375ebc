package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wastewise/internal/auth"
	"wastewise/internal/errors"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError converts a service error into an echo HTTP error. Server-side
// failures are logged with the request id and hidden from the client.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid request body",
			Code:    "VALIDATION_ERROR",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	}
	return nil
}

// caller returns the identity attached by the auth gate.
func caller(c echo.Context) (auth.Identity, error) {
	identity, ok := auth.IdentityFrom(c.Request().Context())
	if !ok {
		return auth.Identity{}, respondError(c, errors.ErrUnauthenticated)
	}
	return *identity, nil
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, respondError(c, errors.Validation("%s must be a positive integer", name))
	}
	return uint(id), nil
}

// FlexibleID is a record id that may arrive as a JSON number or a numeric string.
type FlexibleID uint

// UnmarshalJSON accepts 7, "7" and null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n == "" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return err
	}
	*id = FlexibleID(v)
	return nil
}
