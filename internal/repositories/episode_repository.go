package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// episodeRepository implements EpisodeRepository
type episodeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(db *sql.DB, logger *zap.Logger) *episodeRepository {
	return &episodeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new episode
func (r *episodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	query := `
		INSERT INTO episodes (title, language, duration_seconds, video_path, subtitle_path, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		episode.Title,
		episode.Language,
		episode.DurationSeconds,
		episode.VideoPath,
		episode.SubtitlePath,
		episode.Status,
	)
	if err != nil {
		r.logger.Error("failed to create episode", zap.Error(err))
		return fmt.Errorf("failed to create episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	episode.ID = int(id)
	return nil
}

// GetByID retrieves an episode by ID
func (r *episodeRepository) GetByID(ctx context.Context, episodeID int) (*models.Episode, error) {
	query := `
		SELECT id, title, language, duration_seconds, video_path, subtitle_path, status
		FROM episodes
		WHERE id = ?
	`

	episode := &models.Episode{}
	err := r.db.QueryRowContext(ctx, query, episodeID).Scan(
		&episode.ID,
		&episode.Title,
		&episode.Language,
		&episode.DurationSeconds,
		&episode.VideoPath,
		&episode.SubtitlePath,
		&episode.Status,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("episode not found")
	}
	if err != nil {
		r.logger.Error("failed to get episode", zap.Error(err), zap.Int("episode_id", episodeID))
		return nil, fmt.Errorf("failed to get episode: %w", err)
	}

	return episode, nil
}

// ListReady retrieves all episodes that finished processing
func (r *episodeRepository) ListReady(ctx context.Context) ([]models.Episode, error) {
	query := `
		SELECT id, title, language, duration_seconds, video_path, subtitle_path, status
		FROM episodes
		WHERE status = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, models.EpisodeStatusReady)
	if err != nil {
		r.logger.Error("failed to list episodes", zap.Error(err))
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []models.Episode
	for rows.Next() {
		var episode models.Episode
		err := rows.Scan(
			&episode.ID,
			&episode.Title,
			&episode.Language,
			&episode.DurationSeconds,
			&episode.VideoPath,
			&episode.SubtitlePath,
			&episode.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return episodes, nil
}

// UpdateStatus updates the processing status of an episode
func (r *episodeRepository) UpdateStatus(ctx context.Context, episodeID int, status models.EpisodeStatus) error {
	query := `UPDATE episodes SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, episodeID)
	if err != nil {
		r.logger.Error("failed to update episode status", zap.Error(err), zap.Int("episode_id", episodeID))
		return fmt.Errorf("failed to update episode status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("episode not found")
	}

	return nil
}

// UpdateDuration sets the episode duration discovered during processing
func (r *episodeRepository) UpdateDuration(ctx context.Context, episodeID, durationSeconds int) error {
	query := `UPDATE episodes SET duration_seconds = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, durationSeconds, episodeID); err != nil {
		r.logger.Error("failed to update episode duration", zap.Error(err), zap.Int("episode_id", episodeID))
		return fmt.Errorf("failed to update episode duration: %w", err)
	}

	return nil
}
