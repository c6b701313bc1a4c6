package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// userTokenRepository implements UserTokenRepository
type userTokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB, logger *zap.Logger) *userTokenRepository {
	return &userTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new refresh token for a user
func (r *userTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	query := `INSERT INTO user_tokens (user_id, token) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, userToken.UserID, userToken.Token)
	if err != nil {
		r.logger.Error("failed to create user token", zap.Error(err), zap.Int("user_id", userToken.UserID))
		return fmt.Errorf("failed to create user token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	userToken.ID = int(id)
	return nil
}

// GetByToken retrieves a user token by token string
func (r *userTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	query := `SELECT id, user_id, token FROM user_tokens WHERE token = ? LIMIT 1`

	userToken := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&userToken.ID,
		&userToken.UserID,
		&userToken.Token,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user token not found")
	}
	if err != nil {
		r.logger.Error("failed to get user token", zap.Error(err))
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}

	return userToken, nil
}

// UpdateToken replaces an old refresh token with a new one for a user
func (r *userTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	query := `UPDATE user_tokens SET token = ?, created_at = NOW() WHERE token = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, newToken, oldToken, userID)
	if err != nil {
		r.logger.Error("failed to update user token", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to update user token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user token not found")
	}

	return nil
}

// DeleteByToken deletes a user token by token string
func (r *userTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM user_tokens WHERE token = ?`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		r.logger.Error("failed to delete user token", zap.Error(err))
		return fmt.Errorf("failed to delete user token: %w", err)
	}

	return nil
}

// DeleteCreatedBefore deletes refresh tokens created before the cutoff and returns the count
func (r *userTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM user_tokens WHERE created_at < ?`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		r.logger.Error("failed to delete expired user tokens", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired user tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
