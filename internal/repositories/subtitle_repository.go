package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/langplug/backend/internal/models"
)

// subtitleRepository implements SubtitleRepository
type subtitleRepository struct {
	db *sql.DB
}

// NewSubtitleRepository creates a new subtitle repository
func NewSubtitleRepository(db *sql.DB) *subtitleRepository {
	return &subtitleRepository{
		db: db,
	}
}

// InsertCues inserts subtitle cues for a segment
func (r *subtitleRepository) InsertCues(ctx context.Context, segmentID int, cues []models.SubtitleCue) error {
	if len(cues) == 0 {
		return nil
	}

	query := `
		INSERT INTO subtitle_cues (segment_id, cue_index, start_ms, end_ms, text)
		VALUES (?, ?, ?, ?, ?)
	`

	for i := range cues {
		result, err := r.db.ExecContext(ctx, query,
			segmentID,
			cues[i].CueIndex,
			cues[i].StartMS,
			cues[i].EndMS,
			cues[i].Text,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cue: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		cues[i].ID = int(id)
		cues[i].SegmentID = segmentID
	}

	return nil
}

// GetBySegment retrieves all cues of a segment ordered by cue index
func (r *subtitleRepository) GetBySegment(ctx context.Context, segmentID int) ([]models.SubtitleCue, error) {
	query := `
		SELECT id, segment_id, cue_index, start_ms, end_ms, text
		FROM subtitle_cues
		WHERE segment_id = ?
		ORDER BY cue_index
	`

	rows, err := r.db.QueryContext(ctx, query, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cues: %w", err)
	}
	defer rows.Close()

	var cues []models.SubtitleCue
	for rows.Next() {
		var cue models.SubtitleCue
		err := rows.Scan(
			&cue.ID,
			&cue.SegmentID,
			&cue.CueIndex,
			&cue.StartMS,
			&cue.EndMS,
			&cue.Text,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cue: %w", err)
		}
		cues = append(cues, cue)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cues, nil
}
