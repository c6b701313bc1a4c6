package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// processJobRepository implements ProcessJobRepository
type processJobRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProcessJobRepository creates a new process job repository
func NewProcessJobRepository(db *sql.DB, logger *zap.Logger) *processJobRepository {
	return &processJobRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new pending job for an episode.
// The insert is conditional so that concurrent requests cannot create a second
// pending or running job for the same episode.
func (r *processJobRepository) Create(ctx context.Context, job *models.ProcessJob) error {
	query := `
		INSERT INTO process_jobs (episode_id, status, enqueued_at)
		SELECT ?, ?, NOW() FROM DUAL
		WHERE NOT EXISTS (SELECT 1 FROM process_jobs WHERE episode_id = ? AND status IN (?, ?))
	`

	result, err := r.db.ExecContext(ctx, query,
		job.EpisodeID,
		job.Status,
		job.EpisodeID,
		models.ProcessJobStatusPending,
		models.ProcessJobStatusRunning,
	)
	if err != nil {
		r.logger.Error("failed to create process job", zap.Error(err), zap.Int("episode_id", job.EpisodeID))
		return fmt.Errorf("failed to create process job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("episode already has an active process job")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	job.ID = int(id)
	return nil
}

// GetByID retrieves a job by ID
func (r *processJobRepository) GetByID(ctx context.Context, jobID int) (*models.ProcessJob, error) {
	query := `
		SELECT id, episode_id, status, error_message, enqueued_at, finished_at
		FROM process_jobs
		WHERE id = ?
	`

	job := &models.ProcessJob{}
	var errorMessage sql.NullString
	var finishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.EpisodeID,
		&job.Status,
		&errorMessage,
		&job.EnqueuedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("process job not found")
	}
	if err != nil {
		r.logger.Error("failed to get process job", zap.Error(err), zap.Int("job_id", jobID))
		return nil, fmt.Errorf("failed to get process job: %w", err)
	}

	if errorMessage.Valid {
		job.Error = errorMessage.String
	}
	if finishedAt.Valid {
		job.FinishedAt = &finishedAt.Time
	}

	return job, nil
}

// HasActiveByEpisode reports whether an episode has a pending or running job
func (r *processJobRepository) HasActiveByEpisode(ctx context.Context, episodeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM process_jobs WHERE episode_id = ? AND status IN (?, ?))`

	var active bool
	err := r.db.QueryRowContext(ctx, query, episodeID, models.ProcessJobStatusPending, models.ProcessJobStatusRunning).Scan(&active)
	if err != nil {
		r.logger.Error("failed to check active job", zap.Error(err), zap.Int("episode_id", episodeID))
		return false, fmt.Errorf("failed to check active job: %w", err)
	}

	return active, nil
}

// MarkRunning moves a job from pending to running
func (r *processJobRepository) MarkRunning(ctx context.Context, jobID int) error {
	query := `UPDATE process_jobs SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, models.ProcessJobStatusRunning, jobID, models.ProcessJobStatusPending)
	if err != nil {
		r.logger.Error("failed to mark job running", zap.Error(err), zap.Int("job_id", jobID))
		return fmt.Errorf("failed to mark job running: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("process job not pending")
	}

	return nil
}

// Finish marks a job done or failed with an optional error message
func (r *processJobRepository) Finish(ctx context.Context, jobID int, status models.ProcessJobStatus, errorMessage string) error {
	query := `UPDATE process_jobs SET status = ?, error_message = ?, finished_at = NOW() WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, errorMessage, jobID); err != nil {
		r.logger.Error("failed to finish job", zap.Error(err), zap.Int("job_id", jobID))
		return fmt.Errorf("failed to finish job: %w", err)
	}

	return nil
}

// DeleteFinishedBefore deletes done and failed jobs finished before the cutoff
func (r *processJobRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM process_jobs WHERE status IN (?, ?) AND finished_at < ?`

	result, err := r.db.ExecContext(ctx, query, models.ProcessJobStatusDone, models.ProcessJobStatusFailed, cutoff)
	if err != nil {
		r.logger.Error("failed to delete old jobs", zap.Error(err))
		return 0, fmt.Errorf("failed to delete old jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
