package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/findmycamp/api/internal/handler"    // import the handlers that implement business logic
	"github.com/findmycamp/api/internal/middleware" // import middleware for JWT authentication and admin enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.  The optional loginLimiter is a
// Redis token-bucket middleware applied to the credential-accepting routes so
// that a single client cannot hammer the login surface; pass nil to disable
// it (tests, or deployments without Redis).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	if loginLimiter != nil {
		g.Use(loginLimiter)
	}
	// Register a POST endpoint to handle account registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle login at /v1/auth/login.  The handler
	// runs the lockout evaluation before any tokens are issued.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to log out using a refresh token.  Logout does
	// not require JWT authentication: the handler accepts a JSON body
	// containing a `refresh_token` and will invalidate that token.  If the
	// token is valid, a 204 response is returned; otherwise 400/401/500 are
	// possible depending on the error.
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.  Protected endpoints live under /v1.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated account's information.
	auth.GET("/me", a.Me)
	// A bearer-authenticated logout that revokes every refresh token for the
	// account, so a client can terminate all of its sessions at once.
	auth.POST("/logout", a.Logout)
}
