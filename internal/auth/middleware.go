package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "pizzeria/internal/errors"
)

// Middleware returns an echo middleware that resolves the bearer token
// through the token service. Revoked tokens are rejected even though their
// signature still checks out.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Verify(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// FromContext returns the identity stored by Middleware, or nil on
// unauthenticated routes.
func FromContext(c echo.Context) *Identity {
	id, _ := c.Get("user").(*Identity)
	return id
}
