package handler

// This file defines the favorite (saved listing) endpoints. Save
// and unsave are idempotent: repeating either reports what happened in
// the `action` field without issuing writes. The response shape is the
// small acknowledgment the web client expects: {success, message, action}.

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/findmycamp/api/internal/favorites"
	"github.com/findmycamp/api/internal/repository"
)

// FavoriteHandler bundles the favorites manager and the repo used for
// reading back an account's saved listings.
type FavoriteHandler struct {
	Manager   *favorites.Manager
	Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(m *favorites.Manager, repo *repository.FavoriteRepo) *FavoriteHandler {
	if m == nil || repo == nil {
		panic("nil dependency passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Manager: m, Favorites: repo}
}

// Save handles POST /v1/listings/:id/save.
func (h *FavoriteHandler) Save(c echo.Context) error {
	return h.toggle(c, h.Manager.Save, "campground saved successfully", "campground already saved")
}

// Unsave handles POST /v1/listings/:id/unsave.
func (h *FavoriteHandler) Unsave(c echo.Context) error {
	return h.toggle(c, h.Manager.Unsave, "campground removed from saved list", "campground not in saved list")
}

func (h *FavoriteHandler) toggle(c echo.Context, op func(context.Context, uint64, uint64) (favorites.Result, error), changedMsg, noopMsg string) error {
	acctID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	listingID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := op(ctx, acctID, listingID)
	if err != nil {
		if errors.Is(err, favorites.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "campground not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "please try again"})
	}

	msg := changedMsg
	if !res.Changed {
		msg = noopMsg
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": msg,
		"action":  res.Action,
	})
}

// Saved handles GET /v1/saved and returns the caller's saved listings,
// newest save first. Edges whose listing has since been deleted are
// skipped by the join, never surfaced as errors.
func (h *FavoriteHandler) Saved(c echo.Context) error {
	acctID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Favorites.ListSavedByAccount(ctx, acctID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]echo.Map, 0, len(listings))
	for _, l := range listings {
		out = append(out, echo.Map{
			"id":           l.ID,
			"title":        l.Title,
			"image_url":    l.ImageURL,
			"price":        l.Price,
			"rating":       l.Rating,
			"review_count": l.ReviewCount,
			"location":     l.Location,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out, "total": len(out)})
}
