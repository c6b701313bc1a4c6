package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// segmentRepository implements SegmentRepository
type segmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB, logger *zap.Logger) *segmentRepository {
	return &segmentRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForEpisode deletes all segments of an episode and inserts the new ones
// in a single transaction. Cues and word links cascade on delete, so reprocessing
// an episode starts from a clean slate.
func (r *segmentRepository) ReplaceForEpisode(ctx context.Context, episodeID int, segments []models.VideoSegment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM video_segments WHERE episode_id = ?`, episodeID); err != nil {
		r.logger.Error("failed to delete old segments", zap.Error(err), zap.Int("episode_id", episodeID))
		return fmt.Errorf("failed to delete old segments: %w", err)
	}

	query := `
		INSERT INTO video_segments (episode_id, segment_index, start_seconds, end_seconds)
		VALUES (?, ?, ?, ?)
	`
	for i := range segments {
		result, err := tx.ExecContext(ctx, query,
			episodeID,
			segments[i].SegmentIndex,
			segments[i].StartSeconds,
			segments[i].EndSeconds,
		)
		if err != nil {
			r.logger.Error("failed to insert segment", zap.Error(err), zap.Int("episode_id", episodeID))
			return fmt.Errorf("failed to insert segment: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		segments[i].ID = int(id)
		segments[i].EpisodeID = episodeID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByEpisode retrieves all segments of an episode ordered by index
func (r *segmentRepository) GetByEpisode(ctx context.Context, episodeID int) ([]models.VideoSegment, error) {
	query := `
		SELECT id, episode_id, segment_index, start_seconds, end_seconds
		FROM video_segments
		WHERE episode_id = ?
		ORDER BY segment_index
	`

	rows, err := r.db.QueryContext(ctx, query, episodeID)
	if err != nil {
		r.logger.Error("failed to query segments", zap.Error(err), zap.Int("episode_id", episodeID))
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.VideoSegment
	for rows.Next() {
		var segment models.VideoSegment
		err := rows.Scan(
			&segment.ID,
			&segment.EpisodeID,
			&segment.SegmentIndex,
			&segment.StartSeconds,
			&segment.EndSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, segment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return segments, nil
}

// GetByEpisodeAndIndex retrieves one segment of an episode by its index
func (r *segmentRepository) GetByEpisodeAndIndex(ctx context.Context, episodeID, segmentIndex int) (*models.VideoSegment, error) {
	query := `
		SELECT id, episode_id, segment_index, start_seconds, end_seconds
		FROM video_segments
		WHERE episode_id = ? AND segment_index = ?
	`

	segment := &models.VideoSegment{}
	err := r.db.QueryRowContext(ctx, query, episodeID, segmentIndex).Scan(
		&segment.ID,
		&segment.EpisodeID,
		&segment.SegmentIndex,
		&segment.StartSeconds,
		&segment.EndSeconds,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("segment not found")
	}
	if err != nil {
		r.logger.Error("failed to get segment", zap.Error(err), zap.Int("episode_id", episodeID), zap.Int("segment_index", segmentIndex))
		return nil, fmt.Errorf("failed to get segment: %w", err)
	}

	return segment, nil
}

// CountByEpisode returns the number of segments of an episode
func (r *segmentRepository) CountByEpisode(ctx context.Context, episodeID int) (int, error) {
	query := `SELECT COUNT(*) FROM video_segments WHERE episode_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, episodeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count segments: %w", err)
	}

	return count, nil
}

// ReplaceSegmentWords replaces the word occurrence links of a segment
func (r *segmentRepository) ReplaceSegmentWords(ctx context.Context, segmentID int, occurrences map[int]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM segment_words WHERE segment_id = ?`, segmentID); err != nil {
		return fmt.Errorf("failed to delete old segment words: %w", err)
	}

	if len(occurrences) > 0 {
		valuePlaceholders := make([]string, 0, len(occurrences))
		args := make([]any, 0, len(occurrences)*3)
		for wordID, count := range occurrences {
			valuePlaceholders = append(valuePlaceholders, "(?, ?, ?)")
			args = append(args, segmentID, wordID, count)
		}

		query := fmt.Sprintf(
			`INSERT INTO segment_words (segment_id, word_id, occurrences) VALUES %s`,
			strings.Join(valuePlaceholders, ","),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("failed to insert segment words", zap.Error(err), zap.Int("segment_id", segmentID))
			return fmt.Errorf("failed to insert segment words: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
