package handler

// This file defines the public browse endpoints. These routes
// require no authentication: guests can list, search and sort
// campground listings and view a single listing before registering.
// Responses are sanitized rows without account details.

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/findmycamp/api/internal/repository"
)

// PublicHandler exposes unauthenticated read-only listing endpoints.
type PublicHandler struct {
	Listings  *repository.ListingRepo
	Favorites *repository.FavoriteRepo
}

func NewPublicHandler(listings *repository.ListingRepo, favorites *repository.FavoriteRepo) *PublicHandler {
	if listings == nil || favorites == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Listings: listings, Favorites: favorites}
}

// Browse handles GET /v1/listings. Supported query parameters:
//   search    – case-insensitive match on title, location, description
//   sort      – price_asc | price_desc | rating_asc | rating_desc | newest | oldest
//   page      – 1-based page number (default 1)
//   page_size – rows per page (default 20, max 100)
func (h *PublicHandler) Browse(c echo.Context) error {
	q := repository.ListingSearchQuery{
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     atoiDefault(c.QueryParam("page"), 1),
		PageSize: atoiDefault(c.QueryParam("page_size"), 20),
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Listings.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	sort := q.Sort
	if sort == "" {
		sort = "newest"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings":  rows,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
		"search":    q.Search,
		"sort":      sort,
	})
}

// Get handles GET /v1/listings/:id and returns one listing along with
// how many accounts have saved it.
func (h *PublicHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	savers, err := h.Favorites.SaverIDs(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":           l.ID,
		"title":        l.Title,
		"image_url":    l.ImageURL,
		"price":        l.Price,
		"rating":       l.Rating,
		"review_count": l.ReviewCount,
		"description":  l.Description,
		"location":     l.Location,
		"author_id":    l.AuthorID,
		"saved_by":     len(savers),
	})
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
