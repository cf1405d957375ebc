package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"wastewise/internal/auth"
	apperrors "wastewise/internal/errors"
)

// IdentityKey is the echo context key holding the verified *auth.Identity.
const IdentityKey = "identity"

// AuthGate requires "Authorization: Bearer <token>". A missing or malformed
// header yields 401; a token that fails verification yields 403.
func AuthGate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		SuccessHandler: func(c echo.Context) {
			identity, ok := c.Get(IdentityKey).(*auth.Identity)
			if !ok {
				return
			}
			c.SetRequest(c.Request().WithContext(auth.WithIdentity(c.Request().Context(), identity)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrInvalidToken) {
				return reject(apperrors.ErrInvalidToken)
			}
			return reject(apperrors.ErrUnauthenticated)
		},
	})
}

// CurrentIdentity returns the identity attached by AuthGate.
func CurrentIdentity(c echo.Context) (*auth.Identity, bool) {
	return auth.IdentityFrom(c.Request().Context())
}

func reject(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// statusOf reports the status code a handler chain ended with.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
