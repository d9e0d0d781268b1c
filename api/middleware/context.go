package middleware

import (
	"slices"

	"coinfolio/internal/utils"

	"github.com/labstack/echo/v4"
)

const contextClaimsKey = "auth_claims"

func SetAuthContext(c echo.Context, claims *utils.Claims) {
	c.Set(contextClaimsKey, claims)
}

func ClaimsFromContext(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(contextClaimsKey).(*utils.Claims)
	return claims, ok
}

func UserIDFromContext(c echo.Context) (uint, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

func HasRole(c echo.Context, role string) bool {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return false
	}
	return slices.Contains(claims.Roles, role)
}
