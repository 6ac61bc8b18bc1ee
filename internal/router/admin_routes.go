package router

import (
	"github.com/findmycamp/api/internal/handler"
	"github.com/findmycamp/api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterAdmin registers admin-scoped account management endpoints under
// /v1/admin.  All routes require a valid JWT whose adm claim is true.
// Admins can grant or revoke the admin flag, deactivate or reactivate an
// account and delete an account outright.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(),
	)
	// Grant or revoke admin rights on an account.
	g.PUT("/accounts/:id/admin", h.SetAdmin)
	// Deactivate or reactivate an account.  Deactivated accounts cannot log
	// in or refresh their sessions.
	g.PUT("/accounts/:id/active", h.SetActive)
	// Delete an account along with its favorites and refresh tokens.
	g.DELETE("/accounts/:id", h.DeleteAccount)
}
