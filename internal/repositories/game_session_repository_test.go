package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/langplug/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupGameSessionTestRepository creates a game session repository with a mock database
func setupGameSessionTestRepository(t *testing.T) (*gameSessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewGameSessionRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestGameSessionRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO game_sessions`).
			WithArgs(7, 5).
			WillReturnResult(sqlmock.NewResult(42, 1))

		session := &models.GameSession{UserID: 7, EpisodeID: 5}
		err := repo.Create(context.Background(), session)

		require.NoError(t, err)
		assert.Equal(t, 42, session.ID)
		assert.Equal(t, 0, session.SegmentIndex)
		assert.False(t, session.Completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key constraint - invalid episode_id", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO game_sessions`).
			WithArgs(7, 999).
			WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))

		err := repo.Create(context.Background(), &models.GameSession{UserID: 7, EpisodeID: 999})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameSessionRepository_GetByID(t *testing.T) {
	startedAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "episode_id", "segment_index", "completed", "started_at", "updated_at"}).
					AddRow(42, 7, 5, 2, false, startedAt, startedAt)
				mock.ExpectQuery(`SELECT id, user_id, episode_id, segment_index, completed, started_at, updated_at`).
					WithArgs(42).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, episode_id, segment_index, completed, started_at, updated_at`).
					WithArgs(42).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "episode_id", "segment_index", "completed", "started_at", "updated_at"}))
			},
			expectedError: true,
			errorContains: "game session not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, episode_id, segment_index, completed, started_at, updated_at`).
					WithArgs(42).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupGameSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			session, err := repo.GetByID(context.Background(), 42)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, 42, session.ID)
				assert.Equal(t, 7, session.UserID)
				assert.Equal(t, 2, session.SegmentIndex)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGameSessionRepository_UpdateSegmentIndex(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_sessions SET segment_index = \?, updated_at = NOW\(\) WHERE id = \?`).
			WithArgs(3, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateSegmentIndex(context.Background(), 42, 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_sessions SET segment_index = \?, updated_at = NOW\(\) WHERE id = \?`).
			WithArgs(3, 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSegmentIndex(context.Background(), 999, 3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameSessionRepository_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_sessions SET completed = 1, updated_at = NOW\(\) WHERE id = \?`).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Complete(context.Background(), 42)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_sessions SET completed = 1, updated_at = NOW\(\) WHERE id = \?`).
			WithArgs(999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Complete(context.Background(), 999)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameSessionRepository_UpsertProgress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO session_progress`).
			WithArgs(42, 3, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertProgress(context.Background(), 42, 3, true)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO session_progress`).
			WithArgs(42, 3, false).
			WillReturnError(errors.New("database error"))

		err := repo.UpsertProgress(context.Background(), 42, 3, false)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameSessionRepository_GetProgress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"session_id", "word_id", "correct", "attempts"}).
			AddRow(42, 3, true, 1).
			AddRow(42, 8, false, 2)
		mock.ExpectQuery(`SELECT session_id, word_id, correct, attempts`).
			WithArgs(42).
			WillReturnRows(rows)

		progress, err := repo.GetProgress(context.Background(), 42)

		require.NoError(t, err)
		require.Len(t, progress, 2)
		assert.Equal(t, 3, progress[0].WordID)
		assert.True(t, progress[0].Correct)
		assert.Equal(t, 2, progress[1].Attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty session", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT session_id, word_id, correct, attempts`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"session_id", "word_id", "correct", "attempts"}))

		progress, err := repo.GetProgress(context.Background(), 42)

		require.NoError(t, err)
		assert.Empty(t, progress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameSessionRepository_GetCorrectWordIDs(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"word_id"}).AddRow(3).AddRow(8)
		mock.ExpectQuery(`SELECT word_id FROM session_progress WHERE session_id = \? AND correct = 1`).
			WithArgs(42).
			WillReturnRows(rows)

		wordIDs, err := repo.GetCorrectWordIDs(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 8}, wordIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupGameSessionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT word_id FROM session_progress WHERE session_id = \? AND correct = 1`).
			WithArgs(42).
			WillReturnError(errors.New("database error"))

		_, err := repo.GetCorrectWordIDs(context.Background(), 42)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
