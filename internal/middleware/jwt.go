package middleware // middleware contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the authenticated username into the request
// context under "username".  The rejection happens before the wrapped
// handler runs, so a protected endpoint never performs its side
// effect on a failed check.  Missing, expired and malformed tokens
// are reported with distinct messages but the same 401 status.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "missing bearer token",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			username, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, utils.ErrTokenExpired) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": msg,
				})
			}

			c.Set("username", username)
			return next(c)
		}
	}
}
