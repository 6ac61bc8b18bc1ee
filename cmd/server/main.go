package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/findmycamp/api/internal/config"     // Internal config loader
	"github.com/findmycamp/api/internal/database"   // MySQL connection helper
	"github.com/findmycamp/api/internal/favorites"  // Save/unsave relationship manager
	"github.com/findmycamp/api/internal/handler"    // HTTP handlers
	"github.com/findmycamp/api/internal/middleware" // Redis throttle and cache middleware
	"github.com/findmycamp/api/internal/queue"      // Audit event consumer
	"github.com/findmycamp/api/internal/repository" // Data access layer
	"github.com/findmycamp/api/internal/router"     // Internal router setup
)

func main() {
	_ = godotenv.Load()  // Load .env if present; real env vars win
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single *sql.DB handle.
	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	favs := repository.NewFavoriteRepo(db)

	// The favorites manager enforces save/unsave semantics on top of the
	// repository; handlers never touch the edge table directly.
	manager := favorites.NewManager(favs)

	authH := handler.NewAuthHandler(cfg, accounts, tokens)
	listingH := handler.NewListingHandler(listings)
	publicH := handler.NewPublicHandler(listings, favs)
	favoriteH := handler.NewFavoriteHandler(manager, favs)
	adminH := handler.NewAdminHandler(accounts)

	// Redis backs the login throttle and the browse cache.  If Redis is
	// unreachable at startup both middlewares are disabled and the server
	// still comes up.
	var loginLimiter, browseCache echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		loginLimiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		browseCache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable; login throttle and browse cache disabled")
	}

	// Consume security audit events (lockouts, listing deletions) in the
	// background.  The consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, loginLimiter)
	router.RegisterPublic(e, publicH, browseCache)
	router.RegisterListings(e, listingH, favoriteH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
