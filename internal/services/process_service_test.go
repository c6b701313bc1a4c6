package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/langplug/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProcessJobRepository is a mock implementation of ProcessJobRepository
type mockProcessJobRepository struct {
	job       *models.ProcessJob
	active    bool
	getErr    error
	activeErr error
	createErr error
}

func (m *mockProcessJobRepository) Create(ctx context.Context, job *models.ProcessJob) error {
	if m.createErr != nil {
		return m.createErr
	}
	job.ID = 77
	return nil
}

func (m *mockProcessJobRepository) GetByID(ctx context.Context, jobID int) (*models.ProcessJob, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.job, nil
}

func (m *mockProcessJobRepository) HasActiveByEpisode(ctx context.Context, episodeID int) (bool, error) {
	if m.activeErr != nil {
		return false, m.activeErr
	}
	return m.active, nil
}

// mockTaskEnqueuer is a mock implementation of TaskEnqueuer
type mockTaskEnqueuer struct {
	err  error
	task *asynq.Task
}

func (m *mockTaskEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.task = task
	return &asynq.TaskInfo{}, nil
}

func TestProcessService_Enqueue(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		jobRepo := &mockProcessJobRepository{}
		episodeRepo := &mockEpisodeReader{episode: &models.Episode{ID: 5}}
		enqueuer := &mockTaskEnqueuer{}

		svc := NewProcessService(jobRepo, episodeRepo, enqueuer, logger)

		job, err := svc.Enqueue(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 77, job.ID)
		assert.Equal(t, models.ProcessJobStatusPending, job.Status)
		require.NotNil(t, enqueuer.task)
		assert.Equal(t, TaskTypeProcessEpisode, enqueuer.task.Type())
		assert.Equal(t, "77", string(enqueuer.task.Payload()))
	})

	t.Run("episode not found", func(t *testing.T) {
		episodeRepo := &mockEpisodeReader{err: errors.New("episode not found")}

		svc := NewProcessService(&mockProcessJobRepository{}, episodeRepo, &mockTaskEnqueuer{}, logger)

		_, err := svc.Enqueue(context.Background(), 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("active job conflict", func(t *testing.T) {
		jobRepo := &mockProcessJobRepository{active: true}
		episodeRepo := &mockEpisodeReader{episode: &models.Episode{ID: 5}}

		svc := NewProcessService(jobRepo, episodeRepo, &mockTaskEnqueuer{}, logger)

		_, err := svc.Enqueue(context.Background(), 5)

		assert.ErrorIs(t, err, ErrJobConflict)
	})

	t.Run("conflict lost race on insert", func(t *testing.T) {
		// Another request created a job between the active check and the insert
		jobRepo := &mockProcessJobRepository{createErr: errors.New("episode already has an active process job")}
		episodeRepo := &mockEpisodeReader{episode: &models.Episode{ID: 5}}

		svc := NewProcessService(jobRepo, episodeRepo, &mockTaskEnqueuer{}, logger)

		_, err := svc.Enqueue(context.Background(), 5)

		assert.ErrorIs(t, err, ErrJobConflict)
	})

	t.Run("enqueue failure", func(t *testing.T) {
		jobRepo := &mockProcessJobRepository{}
		episodeRepo := &mockEpisodeReader{episode: &models.Episode{ID: 5}}
		enqueuer := &mockTaskEnqueuer{err: errors.New("redis unavailable")}

		svc := NewProcessService(jobRepo, episodeRepo, enqueuer, logger)

		_, err := svc.Enqueue(context.Background(), 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to enqueue")
	})
}

func TestProcessService_GetJob(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		jobRepo := &mockProcessJobRepository{
			job: &models.ProcessJob{ID: 77, EpisodeID: 5, Status: models.ProcessJobStatusDone},
		}

		svc := NewProcessService(jobRepo, &mockEpisodeReader{}, &mockTaskEnqueuer{}, logger)

		job, err := svc.GetJob(context.Background(), 77)

		require.NoError(t, err)
		assert.Equal(t, models.ProcessJobStatusDone, job.Status)
	})

	t.Run("not found", func(t *testing.T) {
		jobRepo := &mockProcessJobRepository{getErr: errors.New("process job not found")}

		svc := NewProcessService(jobRepo, &mockEpisodeReader{}, &mockTaskEnqueuer{}, logger)

		_, err := svc.GetJob(context.Background(), 77)

		assert.Error(t, err)
	})
}
