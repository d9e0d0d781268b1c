package middleware

import (
	"errors"
	"net/http"

	"coinfolio/internal/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the inbound trust boundary: it extracts the bearer token,
// verifies it and puts the decoded claims on the request context. No database
// round-trip happens here; the claims are trusted for the token's lifetime.
type AuthMiddleware struct {
	JWT *utils.JWTManager
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := utils.ExtractBearer(c.Request().Header.Get("Authorization"))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
		}
		claims, err := m.JWT.Parse(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, verificationMessage(err))
		}
		SetAuthContext(c, claims)
		return next(c)
	}
}

func verificationMessage(err error) string {
	switch {
	case errors.Is(err, utils.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, utils.ErrTokenNotYetValid):
		return "token not yet valid"
	case errors.Is(err, utils.ErrTokenMalformed):
		return "invalid token"
	default:
		return "unauthorized"
	}
}
