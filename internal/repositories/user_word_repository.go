package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// userWordRepository implements UserWordRepository
type userWordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserWordRepository creates a new user word repository
func NewUserWordRepository(db *sql.DB, logger *zap.Logger) *userWordRepository {
	return &userWordRepository{
		db:     db,
		logger: logger,
	}
}

// SetKnown upserts the known flag for the given words of a user
func (r *userWordRepository) SetKnown(ctx context.Context, userID int, wordIDs []int, known bool) error {
	if len(wordIDs) == 0 {
		return nil
	}

	valuePlaceholders := make([]string, len(wordIDs))
	args := make([]any, 0, len(wordIDs)*3)
	for i, wordID := range wordIDs {
		valuePlaceholders[i] = "(?, ?, ?)"
		args = append(args, userID, wordID, known)
	}

	query := fmt.Sprintf(`
		INSERT INTO user_words (user_id, word_id, known)
		VALUES %s
		ON DUPLICATE KEY UPDATE known = VALUES(known), marked_at = NOW()
	`, strings.Join(valuePlaceholders, ","))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to set known words", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to set known words: %w", err)
	}

	return nil
}

// GetKnownWords retrieves the dictionary words a user has marked known
func (r *userWordRepository) GetKnownWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	query := `
		SELECT w.id, w.lemma, w.translation, w.language, w.level, w.frequency
		FROM user_words uw
		JOIN vocabulary_words w ON w.id = uw.word_id
		WHERE uw.user_id = ? AND uw.known = 1
		ORDER BY uw.marked_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query known words", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to query known words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// GetLevelStats returns known/total word counts per CEFR level for a user
func (r *userWordRepository) GetLevelStats(ctx context.Context, userID int) ([]models.LevelStats, error) {
	query := `
		SELECT w.level,
		       COUNT(*) AS total,
		       COUNT(CASE WHEN uw.known = 1 THEN 1 END) AS known
		FROM vocabulary_words w
		LEFT JOIN user_words uw ON uw.word_id = w.id AND uw.user_id = ?
		GROUP BY w.level
		ORDER BY FIELD(w.level, 'A1', 'A2', 'B1', 'B2', 'C1', 'C2')
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query level stats", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to query level stats: %w", err)
	}
	defer rows.Close()

	var stats []models.LevelStats
	for rows.Next() {
		var s models.LevelStats
		if err := rows.Scan(&s.Level, &s.Total, &s.Known); err != nil {
			return nil, fmt.Errorf("failed to scan level stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}
