package handler

// This file defines admin-only account management endpoints,
// mirroring the operator tooling in cmd/admin: toggling the admin and
// active flags and deleting an account. All routes here sit behind
// JWTAuth plus RequireAdmin.

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/findmycamp/api/internal/repository"
)

// AdminHandler bundles the account repository for admin operations.
type AdminHandler struct {
	Accounts *repository.AccountRepo
}

func NewAdminHandler(accounts *repository.AccountRepo) *AdminHandler {
	if accounts == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Accounts: accounts}
}

type adminFlagReq struct {
	IsAdmin bool `json:"is_admin"`
}
type activeFlagReq struct {
	IsActive bool `json:"is_active"`
}

// SetAdmin handles PUT /v1/admin/accounts/:id/admin.
func (h *AdminHandler) SetAdmin(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminFlagReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetAdmin(ctx, id, req.IsAdmin); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetActive handles PUT /v1/admin/accounts/:id/active. Deactivated
// accounts are rejected at login before any password check.
func (h *AdminHandler) SetActive(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req activeFlagReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetActive(ctx, id, req.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount handles DELETE /v1/admin/accounts/:id. The account's
// favorite edges and refresh tokens are removed in the same
// transaction, so no listing keeps a dangling saver reference.
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
