package middleware

import (
	"github.com/labstack/echo/v4"

	apperrors "wastewise/internal/errors"
)

// RequireRoles rejects callers whose role is not listed. It must run after AuthGate.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok {
				return reject(apperrors.ErrUnauthenticated)
			}
			if !identity.HasRole(roles...) {
				return reject(apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}
