package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in accountID
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types
)

// accountID extracts the authenticated account id from echo.Context and
// converts it to uint64. The JWT middleware stores the sub claim, which
// the jwt library decodes as float64.
func accountID(c echo.Context) (uint64, error) {
	v := c.Get("account_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid account_id in context")
}

// isAdmin reports whether the authenticated account carries the admin
// claim. Missing or malformed claims count as non-admin.
func isAdmin(c echo.Context) bool {
	v, _ := c.Get("is_admin").(bool)
	return v
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
