package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/langplug/backend/internal/config"
	"github.com/langplug/backend/internal/logger"
	"github.com/langplug/backend/internal/repositories"
	"github.com/langplug/backend/internal/services"
	"github.com/langplug/backend/internal/storage"
	"go.uber.org/zap"
)

// finishedJobRetention is how long done and failed processing jobs are kept
const finishedJobRetention = 30 * 24 * time.Hour

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

	logger.Logger.Info("Starting LangPlug Worker")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		os.Exit(1)
	}

	// Create Asynq client for the maintenance scheduler
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize repositories
	userTokenRepo := repositories.NewUserTokenRepository(db, logger.Logger)
	wordRepo := repositories.NewWordRepository(db)
	episodeRepo := repositories.NewEpisodeRepository(db, logger.Logger)
	segmentRepo := repositories.NewSegmentRepository(db, logger.Logger)
	subtitleRepo := repositories.NewSubtitleRepository(db)
	processJobRepo := repositories.NewProcessJobRepository(db, logger.Logger)

	// Initialize media storage
	mediaStore := storage.NewLocalStorage(cfg.MediaBasePath)

	// Initialize services
	pipelineService := services.NewPipelineService(
		processJobRepo,
		episodeRepo,
		segmentRepo,
		subtitleRepo,
		wordRepo,
		mediaStore,
		cfg.Processing.ChunkSeconds,
		logger.Logger,
	)
	tokenCleaningService := services.NewTokenCleaningService(userTokenRepo, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	jobCleaningService := services.NewJobCleaningService(processJobRepo, finishedJobRetention, logger.Logger)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				"default":     5,
				"maintenance": 1,
			},
		},
	)

	// Create worker instance
	worker := NewWorker(logger.Logger, pipelineService, tokenCleaningService, jobCleaningService)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TaskTypeProcessEpisode, worker.HandleProcessEpisode)
	mux.HandleFunc(taskTypeCleanTokens, worker.HandleCleanTokens)
	mux.HandleFunc(taskTypeCleanJobs, worker.HandleCleanJobs)

	// Start maintenance scheduler
	scheduler := NewScheduler(asynqClient, logger.Logger)
	if err := scheduler.Start(); err != nil {
		logger.Logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
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
