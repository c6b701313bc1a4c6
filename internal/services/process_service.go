package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// TaskTypeProcessEpisode is the asynq task type for episode processing
const TaskTypeProcessEpisode = "process:episode"

// ProcessJobRepository is the interface that wraps methods for ProcessJob table data access
type ProcessJobRepository interface {
	// Create inserts a new pending job for an episode.
	Create(ctx context.Context, job *models.ProcessJob) error
	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, jobID int) (*models.ProcessJob, error)
	// HasActiveByEpisode reports whether an episode has a pending or running job.
	HasActiveByEpisode(ctx context.Context, episodeID int) (bool, error)
}

// EpisodeReader is the interface that wraps episode lookup used when enqueueing jobs
type EpisodeReader interface {
	GetByID(ctx context.Context, episodeID int) (*models.Episode, error)
}

// TaskEnqueuer is the interface that wraps the asynq client used to enqueue tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ErrJobConflict is returned when an episode already has an active processing job
var ErrJobConflict = fmt.Errorf("episode already has an active processing job")

// processService implements ProcessService
type processService struct {
	jobRepo     ProcessJobRepository
	episodeRepo EpisodeReader
	enqueuer    TaskEnqueuer
	logger      *zap.Logger
}

// NewProcessService creates a new process service
func NewProcessService(
	jobRepo ProcessJobRepository,
	episodeRepo EpisodeReader,
	enqueuer TaskEnqueuer,
	logger *zap.Logger,
) *processService {
	return &processService{
		jobRepo:     jobRepo,
		episodeRepo: episodeRepo,
		enqueuer:    enqueuer,
		logger:      logger,
	}
}

// Enqueue creates a processing job for an episode and puts it on the queue.
// Only one pending or running job is allowed per episode; a duplicate request
// returns ErrJobConflict so the handler can answer 409.
func (s *processService) Enqueue(ctx context.Context, episodeID int) (*models.ProcessJob, error) {
	if _, err := s.episodeRepo.GetByID(ctx, episodeID); err != nil {
		return nil, err
	}

	active, err := s.jobRepo.HasActiveByEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrJobConflict
	}

	job := &models.ProcessJob{
		EpisodeID: episodeID,
		Status:    models.ProcessJobStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		// The insert is conditional, so a concurrent enqueue that won the race
		// shows up here rather than in the check above
		if strings.Contains(err.Error(), "active process job") {
			return nil, ErrJobConflict
		}
		return nil, err
	}

	task := asynq.NewTask(TaskTypeProcessEpisode, []byte(strconv.Itoa(job.ID)))
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		s.logger.Error("failed to enqueue processing task",
			zap.Error(err),
			zap.Int("job_id", job.ID),
			zap.Int("episode_id", episodeID),
		)
		return nil, fmt.Errorf("failed to enqueue processing task: %w", err)
	}

	s.logger.Info("processing job enqueued",
		zap.Int("job_id", job.ID),
		zap.Int("episode_id", episodeID),
	)
	return job, nil
}

// GetJob retrieves a processing job by ID
func (s *processService) GetJob(ctx context.Context, jobID int) (*models.ProcessJob, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}
