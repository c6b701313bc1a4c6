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

// setupUserTokenTestRepository creates a user token repository with a mock database
func setupUserTokenTestRepository(t *testing.T) (*userTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserTokenRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserTokenRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		userToken     *models.UserToken
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			userToken: &models.UserToken{
				UserID: 10,
				Token:  "test-refresh-token",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_tokens`).
					WithArgs(10, "test-refresh-token").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name: "database error",
			userToken: &models.UserToken{
				UserID: 10,
				Token:  "test-refresh-token",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_tokens`).
					WithArgs(10, "test-refresh-token").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "foreign key constraint - invalid user_id",
			userToken: &models.UserToken{
				UserID: 999,
				Token:  "test-refresh-token",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_tokens`).
					WithArgs(999, "test-refresh-token").
					WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.userToken)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, tt.userToken.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_GetByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedToken *models.UserToken
	}{
		{
			name:  "success",
			token: "test-refresh-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "token"}).
					AddRow(1, 10, "test-refresh-token")
				mock.ExpectQuery(`SELECT id, user_id, token FROM user_tokens WHERE token = \? LIMIT 1`).
					WithArgs("test-refresh-token").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedToken: &models.UserToken{
				ID:     1,
				UserID: 10,
				Token:  "test-refresh-token",
			},
		},
		{
			name:  "not found",
			token: "nonexistent-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, token FROM user_tokens WHERE token = \? LIMIT 1`).
					WithArgs("nonexistent-token").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token"}))
			},
			expectedError: true,
		},
		{
			name:  "scan error - invalid data types",
			token: "test-refresh-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "token"}).
					AddRow("invalid", 10, "test-refresh-token")
				mock.ExpectQuery(`SELECT id, user_id, token FROM user_tokens WHERE token = \? LIMIT 1`).
					WithArgs("test-refresh-token").
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			userToken, err := repo.GetByToken(context.Background(), tt.token)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, userToken)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, userToken)
				assert.Equal(t, tt.expectedToken.ID, userToken.ID)
				assert.Equal(t, tt.expectedToken.UserID, userToken.UserID)
				assert.Equal(t, tt.expectedToken.Token, userToken.Token)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_UpdateToken(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens SET token = \?, created_at = NOW\(\) WHERE token = \? AND user_id = \?`).
					WithArgs("new-token", "old-token", 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "token not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens SET token = \?, created_at = NOW\(\) WHERE token = \? AND user_id = \?`).
					WithArgs("new-token", "old-token", 10).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "user token not found",
		},
		{
			name: "rows affected error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens SET token = \?, created_at = NOW\(\) WHERE token = \? AND user_id = \?`).
					WithArgs("new-token", "old-token", 10).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateToken(context.Background(), "old-token", "new-token", 10)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_DeleteByToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupUserTokenTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM user_tokens WHERE token = \?`).
			WithArgs("test-refresh-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByToken(context.Background(), "test-refresh-token")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTokenTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM user_tokens WHERE token = \?`).
			WithArgs("test-refresh-token").
			WillReturnError(errors.New("database error"))

		err := repo.DeleteByToken(context.Background(), "test-refresh-token")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserTokenRepository_DeleteCreatedBefore(t *testing.T) {
	cutoff := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupUserTokenTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at < \?`).
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 8))

		deleted, err := repo.DeleteCreatedBefore(context.Background(), cutoff)

		require.NoError(t, err)
		assert.Equal(t, int64(8), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTokenTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at < \?`).
			WithArgs(cutoff).
			WillReturnError(errors.New("database error"))

		_, err := repo.DeleteCreatedBefore(context.Background(), cutoff)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
