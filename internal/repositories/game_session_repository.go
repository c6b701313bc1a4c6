package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// gameSessionRepository implements GameSessionRepository
type gameSessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGameSessionRepository creates a new game session repository
func NewGameSessionRepository(db *sql.DB, logger *zap.Logger) *gameSessionRepository {
	return &gameSessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new session starting at segment 0
func (r *gameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	query := `
		INSERT INTO game_sessions (user_id, episode_id, segment_index, completed, started_at, updated_at)
		VALUES (?, ?, 0, 0, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query, session.UserID, session.EpisodeID)
	if err != nil {
		r.logger.Error("failed to create game session", zap.Error(err), zap.Int("user_id", session.UserID))
		return fmt.Errorf("failed to create game session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	session.ID = int(id)
	session.SegmentIndex = 0
	session.Completed = false
	return nil
}

// GetByID retrieves a session by ID
func (r *gameSessionRepository) GetByID(ctx context.Context, sessionID int) (*models.GameSession, error) {
	query := `
		SELECT id, user_id, episode_id, segment_index, completed, started_at, updated_at
		FROM game_sessions
		WHERE id = ?
	`

	session := &models.GameSession{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.EpisodeID,
		&session.SegmentIndex,
		&session.Completed,
		&session.StartedAt,
		&session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game session not found")
	}
	if err != nil {
		r.logger.Error("failed to get game session", zap.Error(err), zap.Int("session_id", sessionID))
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	return session, nil
}

// GetOpenByUserAndEpisode retrieves the user's uncompleted session for an episode
func (r *gameSessionRepository) GetOpenByUserAndEpisode(ctx context.Context, userID, episodeID int) (*models.GameSession, error) {
	query := `
		SELECT id, user_id, episode_id, segment_index, completed, started_at, updated_at
		FROM game_sessions
		WHERE user_id = ? AND episode_id = ? AND completed = 0
		LIMIT 1
	`

	session := &models.GameSession{}
	err := r.db.QueryRowContext(ctx, query, userID, episodeID).Scan(
		&session.ID,
		&session.UserID,
		&session.EpisodeID,
		&session.SegmentIndex,
		&session.Completed,
		&session.StartedAt,
		&session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game session not found")
	}
	if err != nil {
		r.logger.Error("failed to get open game session", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get open game session: %w", err)
	}

	return session, nil
}

// UpdateSegmentIndex advances a session to the given segment index
func (r *gameSessionRepository) UpdateSegmentIndex(ctx context.Context, sessionID, segmentIndex int) error {
	query := `UPDATE game_sessions SET segment_index = ?, updated_at = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, segmentIndex, sessionID)
	if err != nil {
		r.logger.Error("failed to update segment index", zap.Error(err), zap.Int("session_id", sessionID))
		return fmt.Errorf("failed to update segment index: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game session not found")
	}

	return nil
}

// Complete marks a session as completed
func (r *gameSessionRepository) Complete(ctx context.Context, sessionID int) error {
	query := `UPDATE game_sessions SET completed = 1, updated_at = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		r.logger.Error("failed to complete game session", zap.Error(err), zap.Int("session_id", sessionID))
		return fmt.Errorf("failed to complete game session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game session not found")
	}

	return nil
}

// UpsertProgress records an answer for a word within a session
func (r *gameSessionRepository) UpsertProgress(ctx context.Context, sessionID, wordID int, correct bool) error {
	query := `
		INSERT INTO session_progress (session_id, word_id, correct, attempts)
		VALUES (?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE correct = VALUES(correct), attempts = attempts + 1
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, wordID, correct); err != nil {
		r.logger.Error("failed to upsert session progress", zap.Error(err), zap.Int("session_id", sessionID))
		return fmt.Errorf("failed to upsert session progress: %w", err)
	}

	return nil
}

// GetProgress retrieves all progress rows of a session
func (r *gameSessionRepository) GetProgress(ctx context.Context, sessionID int) ([]models.SessionProgress, error) {
	query := `
		SELECT session_id, word_id, correct, attempts
		FROM session_progress
		WHERE session_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		r.logger.Error("failed to query session progress", zap.Error(err), zap.Int("session_id", sessionID))
		return nil, fmt.Errorf("failed to query session progress: %w", err)
	}
	defer rows.Close()

	var progress []models.SessionProgress
	for rows.Next() {
		var p models.SessionProgress
		if err := rows.Scan(&p.SessionID, &p.WordID, &p.Correct, &p.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan session progress: %w", err)
		}
		progress = append(progress, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return progress, nil
}

// GetCorrectWordIDs retrieves the word IDs answered correctly in a session
func (r *gameSessionRepository) GetCorrectWordIDs(ctx context.Context, sessionID int) ([]int, error) {
	query := `SELECT word_id FROM session_progress WHERE session_id = ? AND correct = 1`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query correct words: %w", err)
	}
	defer rows.Close()

	var wordIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan word id: %w", err)
		}
		wordIDs = append(wordIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return wordIDs, nil
}
