package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireAdmin returns a middleware that restricts a route group to
// accounts carrying the admin flag. It assumes JWTAuth has already run
// and stored the "is_admin" claim in the context; a missing or false
// flag is answered with 403. Note this is for admin-only surfaces such
// as account management; the per-listing author-or-admin gate lives in
// the repository layer where the author id is known.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("is_admin")
			isAdmin, ok := v.(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
