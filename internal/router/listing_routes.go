package router // router defines how HTTP routes are registered for the API

import (
	"github.com/findmycamp/api/internal/handler"    // listing and favorite handlers
	"github.com/findmycamp/api/internal/middleware" // JWT middleware
	"github.com/labstack/echo/v4"
)

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The provided PublicHandler exposes handlers that return
// sanitized listing data for guests.  The optional browseCache is a Redis
// response cache applied to these read-only routes; pass nil to serve every
// request from the database.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, browseCache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if browseCache != nil {
		mws = append(mws, browseCache)
	}
	// Browse all campground listings with search, sort and pagination.
	e.GET("/v1/listings", p.Browse, mws...)
	// Listing detail by id, including how many accounts saved it.
	e.GET("/v1/listings/:id", p.Get, mws...)
}

// RegisterListings registers authenticated listing and favorite endpoints
// under /v1.  All routes require a valid JWT.  Mutations on a listing are
// additionally gated inside the repository: only the listing's author or an
// admin may update or delete it.
func RegisterListings(e *echo.Echo, l *handler.ListingHandler, f *handler.FavoriteHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)

	// ---- Listings ----
	g.POST("/listings", l.Create)
	g.PUT("/listings/:id", l.Update)
	g.PATCH("/listings/:id", l.Update) // allow partial/semantic updates via PATCH as well
	g.DELETE("/listings/:id", l.Delete)

	// ---- Favorites ----
	g.POST("/listings/:id/save", f.Save)
	g.POST("/listings/:id/unsave", f.Unsave)
	g.GET("/saved", f.Saved) // listings the authenticated account has saved
}
