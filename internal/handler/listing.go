package handler

// This file defines HTTP handlers for authenticated listing
// mutations. Create, update and delete all require a session; update
// and delete additionally pass the author-or-admin gate, which the
// repository enforces where the stored author id is known. Deletes
// cascade the listing's favorite edges and emit an audit event.

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/findmycamp/api/internal/model"
	"github.com/findmycamp/api/internal/queue"
	"github.com/findmycamp/api/internal/repository"
	queuepub "github.com/findmycamp/api/internal/service"
)

// ListingHandler bundles repositories for listing mutations.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

// NewListingHandler constructs a ListingHandler and panics if the
// repository is missing.
func NewListingHandler(listings *repository.ListingRepo) *ListingHandler {
	if listings == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: listings}
}

type listingReq struct {
	Title       string  `json:"title"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

func (req listingReq) toModel() model.Listing {
	return model.Listing{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		Description: req.Description,
		Location:    req.Location,
	}
}

// Create handles POST /v1/listings. The authenticated account becomes
// the listing's author.
func (h *ListingHandler) Create(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	l := req.toModel()
	if details := model.ValidateListing(l); len(details) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": details})
	}
	l.AuthorID = &actorID

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": l.ID})
}

// Update handles PUT /v1/listings/:id. Permitted for the listing's
// author or an admin; everyone else receives 403.
func (h *ListingHandler) Update(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	l := req.toModel()
	if details := model.ValidateListing(l); len(details) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": details})
	}
	l.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Listings.UpdateByIDAndActor(ctx, &l, actorID, isAdmin(c))
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/listings/:id. It removes the listing and
// every favorite edge referencing it in one transaction. A successful
// deletion returns 204 No Content. 404 when the listing does not
// exist, 403 when the actor is neither author nor admin.
func (h *ListingHandler) Delete(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Title is fetched up front for the audit event; the transactional
	// delete below re-checks existence and ownership.
	existing, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	err = h.Listings.DeleteByIDAndActor(ctx, id, actorID, isAdmin(c))
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}

	ev := queue.AuditEvent{
		Kind:         queue.KindListingDeleted,
		ListingID:    id,
		ListingTitle: existing.Title,
		ActorID:      actorID,
		ActorIsAdmin: isAdmin(c),
		OccurredAt:   time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queuepub.PublishAudit(pubCtx, ev)
	}()

	return c.NoContent(http.StatusNoContent)
}
