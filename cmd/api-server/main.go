package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"bookhive/database"
	"bookhive/internal/cache"
	"bookhive/internal/config"
	"bookhive/internal/http-api/handler"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/repository"
	"bookhive/internal/http-api/service"
	"bookhive/internal/imagehost"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// Redis is optional, the recommendation cache degrades to a no-op.
	recCache := cache.NewDisabled()
	if cfg.RedisAddr != "" {
		recCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, recommendation cache disabled", "error", err)
			recCache = cache.NewDisabled()
		}
	}
	defer recCache.Close()

	covers := imagehost.NewClient(cfg.ImageHostURL, cfg.ImageHostAPIKey)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	shelfRepo := repository.NewShelfRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tutorialRepo := repository.NewTutorialRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	bookService := service.NewBookService(bookRepo, genreRepo, shelfRepo, reviewRepo, covers, logger)
	genreService := service.NewGenreService(genreRepo, bookRepo)
	shelfService := service.NewShelfService(shelfRepo, bookRepo, recCache, logger)
	reviewService := service.NewReviewService(reviewRepo, bookRepo, logger)
	statsService := service.NewStatsService(shelfRepo, userRepo)
	recService := service.NewRecommendationService(shelfRepo, bookRepo, recCache, logger)
	feedService := service.NewFeedService(followRepo, shelfRepo, reviewRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	userService := service.NewUserService(userRepo, followRepo)
	tutorialService := service.NewTutorialService(tutorialRepo)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")

	handler.NewAuthHandler(authService).RegisterRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	handler.NewBookHandler(bookService).RegisterRoutes(protected.Group("/books"))
	handler.NewGenreHandler(genreService, bookService).RegisterRoutes(protected.Group("/genres"))
	handler.NewShelfHandler(shelfService).RegisterRoutes(protected.Group("/shelf"))
	handler.NewReviewHandler(reviewService).RegisterRoutes(protected.Group("/reviews"))
	handler.NewUserHandler(userService, statsService, recService).RegisterRoutes(protected.Group("/users"))
	handler.NewSocialHandler(followService, feedService).RegisterRoutes(protected.Group("/social"))
	handler.NewTutorialHandler(tutorialService).RegisterRoutes(protected.Group("/tutorials"))

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
