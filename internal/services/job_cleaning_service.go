package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FinishedJobRepository is the interface that wraps the finished job sweep query
type FinishedJobRepository interface {
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// jobCleaningService deletes done and failed processing jobs past their retention
type jobCleaningService struct {
	jobRepo   FinishedJobRepository
	retention time.Duration
	logger    *zap.Logger
}

// NewJobCleaningService creates a new job cleaning service
func NewJobCleaningService(jobRepo FinishedJobRepository, retention time.Duration, logger *zap.Logger) *jobCleaningService {
	return &jobCleaningService{
		jobRepo:   jobRepo,
		retention: retention,
		logger:    logger,
	}
}

// CleanFinished deletes finished jobs older than the retention window
func (s *jobCleaningService) CleanFinished(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.jobRepo.DeleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("deleted finished processing jobs", zap.Int64("count", deleted))
	}
	return deleted, nil
}
