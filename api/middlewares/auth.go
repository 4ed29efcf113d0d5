package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MakeAuth constructs a middleware requiring one of the given tokens in the
// named header. An empty token list disables the check.
func MakeAuth(header string, tokens []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if len(tokens) == 0 {
				return next(ctx)
			}
			provided := ctx.Request().Header.Get(header)
			for _, token := range tokens {
				if provided == token {
					return next(ctx)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}
}
