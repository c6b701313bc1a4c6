package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Maintenance task types enqueued by the cron scheduler
const (
	taskTypeCleanTokens = "maintenance:clean_tokens"
	taskTypeCleanJobs   = "maintenance:clean_jobs"
)

// PipelineService is the interface that wraps the episode processing pipeline.
type PipelineService interface {
	// Method ProcessJob runs the full processing pipeline for one job.
	ProcessJob(ctx context.Context, jobID int) error
}

// TokenCleaner is the interface that wraps the expired token sweep.
type TokenCleaner interface {
	CleanExpired(ctx context.Context) (int64, error)
}

// JobCleaner is the interface that wraps the finished job sweep.
type JobCleaner interface {
	CleanFinished(ctx context.Context) (int64, error)
}

// Worker processes background tasks from the queue
type Worker struct {
	logger       *zap.Logger
	pipeline     PipelineService
	tokenCleaner TokenCleaner
	jobCleaner   JobCleaner
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, pipeline PipelineService, tokenCleaner TokenCleaner, jobCleaner JobCleaner) *Worker {
	return &Worker{
		logger:       logger,
		pipeline:     pipeline,
		tokenCleaner: tokenCleaner,
		jobCleaner:   jobCleaner,
	}
}

// HandleProcessEpisode processes an episode processing task.
// The payload is the process job ID as a decimal string.
func (w *Worker) HandleProcessEpisode(ctx context.Context, t *asynq.Task) error {
	jobID, err := strconv.Atoi(string(t.Payload()))
	if err != nil {
		// Malformed payload, retrying will not help
		w.logger.Error("invalid process task payload", zap.ByteString("payload", t.Payload()))
		return fmt.Errorf("invalid process task payload: %w", asynq.SkipRetry)
	}

	w.logger.Info("processing episode task", zap.Int("job_id", jobID))
	return w.pipeline.ProcessJob(ctx, jobID)
}

// HandleCleanTokens deletes expired refresh tokens
func (w *Worker) HandleCleanTokens(ctx context.Context, t *asynq.Task) error {
	deleted, err := w.tokenCleaner.CleanExpired(ctx)
	if err != nil {
		w.logger.Error("token cleanup failed", zap.Error(err))
		return err
	}

	w.logger.Info("token cleanup finished", zap.Int64("deleted", deleted))
	return nil
}

// HandleCleanJobs deletes old finished processing jobs
func (w *Worker) HandleCleanJobs(ctx context.Context, t *asynq.Task) error {
	deleted, err := w.jobCleaner.CleanFinished(ctx)
	if err != nil {
		w.logger.Error("job cleanup failed", zap.Error(err))
		return err
	}

	w.logger.Info("job cleanup finished", zap.Int64("deleted", deleted))
	return nil
}
