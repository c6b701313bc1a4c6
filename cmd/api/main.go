package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/langplug/backend/docs"
	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/config"
	"github.com/langplug/backend/internal/handlers"
	"github.com/langplug/backend/internal/logger"
	"github.com/langplug/backend/internal/middlewares"
	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/repositories"
	"github.com/langplug/backend/internal/services"
	"github.com/langplug/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LangPlug API
// @version 1.0
// @description API for language learning through subtitled video

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LangPlug API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Create Asynq client for enqueueing processing jobs
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize media storage
	mediaStore := storage.NewLocalStorage(cfg.MediaBasePath)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db, logger.Logger)
	wordRepo := repositories.NewWordRepository(db)
	userWordRepo := repositories.NewUserWordRepository(db, logger.Logger)
	episodeRepo := repositories.NewEpisodeRepository(db, logger.Logger)
	segmentRepo := repositories.NewSegmentRepository(db, logger.Logger)
	subtitleRepo := repositories.NewSubtitleRepository(db)
	processJobRepo := repositories.NewProcessJobRepository(db, logger.Logger)
	gameSessionRepo := repositories.NewGameSessionRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, logger.Logger)
	profileService := services.NewProfileService(userRepo)
	vocabularyService := services.NewVocabularyService(wordRepo, userWordRepo, segmentRepo, userRepo, logger.Logger)
	adminWordService := services.NewAdminWordService(wordRepo)
	episodeService := services.NewEpisodeService(episodeRepo, segmentRepo, subtitleRepo, mediaStore, logger.Logger)
	processService := services.NewProcessService(processJobRepo, episodeRepo, asynqClient, logger.Logger)
	gameService := services.NewGameService(gameSessionRepo, episodeRepo, segmentRepo, wordRepo, userRepo, logger.Logger)
	tokenCleaningService := services.NewTokenCleaningService(userTokenRepo, cfg.JWT.RefreshTokenExpiry, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger.Logger)
	vocabularyHandler := handlers.NewVocabularyHandler(vocabularyService, logger.Logger)
	adminWordHandler := handlers.NewAdminWordHandler(adminWordService, logger.Logger)
	episodeHandler := handlers.NewEpisodeHandler(episodeService, logger.Logger)
	processHandler := handlers.NewProcessHandler(processService, logger.Logger)
	gameHandler := handlers.NewGameHandler(gameService, logger.Logger)
	healthHandler := handlers.NewHealthHandler(db, rdb, logger.Logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(tokenCleaningService, logger.Logger)

	// Initialize auth middlewares
	authMiddleware := auth.Middleware(tokenGenerator)
	adminMiddleware := auth.RoleMiddleware(tokenGenerator, models.RoleAdmin)
	apiKeyMiddleware := auth.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))

	// Health check
	healthHandler.RegisterRoutes(r)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Static media files (video segments are served as byte ranges of the full file)
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaBasePath))))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with a tighter rate limit
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB
			authHandler.RegisterRoutes(r)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB
			profileHandler.RegisterRoutes(r)
			vocabularyHandler.RegisterRoutes(r)
			episodeHandler.RegisterRoutes(r)
			gameHandler.RegisterRoutes(r)
		})

		// Admin routes; no size limit middleware here, episode uploads bound
		// their own body size
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Route("/admin", func(r chi.Router) {
				adminWordHandler.RegisterRoutes(r)
				episodeHandler.RegisterAdminRoutes(r)
			})
			processHandler.RegisterRoutes(r)
		})

		// Internal maintenance routes behind the API key
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			maintenanceHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "langplug_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
