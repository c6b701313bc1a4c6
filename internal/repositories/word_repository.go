package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/langplug/backend/internal/models"
)

// wordRepository implements WordRepository
type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// List retrieves dictionary words with an optional level filter and pagination
func (r *wordRepository) List(ctx context.Context, level models.CEFRLevel, limit, offset int) ([]models.VocabularyWord, error) {
	var query string
	var args []any

	if level == "" {
		query = `
			SELECT id, lemma, translation, language, level, frequency
			FROM vocabulary_words
			ORDER BY frequency DESC, lemma
			LIMIT ? OFFSET ?
		`
		args = []any{limit, offset}
	} else {
		query = `
			SELECT id, lemma, translation, language, level, frequency
			FROM vocabulary_words
			WHERE level = ?
			ORDER BY frequency DESC, lemma
			LIMIT ? OFFSET ?
		`
		args = []any{level, limit, offset}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// GetByIDs retrieves words by their IDs
func (r *wordRepository) GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error) {
	if len(wordIDs) == 0 {
		return []models.VocabularyWord{}, nil
	}

	placeholders := make([]string, len(wordIDs))
	args := make([]any, len(wordIDs))
	for i, id := range wordIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, lemma, translation, language, level, frequency
		FROM vocabulary_words
		WHERE id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// GetByLemmas retrieves words matching any of the given lemmas for a language
func (r *wordRepository) GetByLemmas(ctx context.Context, language string, lemmas []string) ([]models.VocabularyWord, error) {
	if len(lemmas) == 0 {
		return []models.VocabularyWord{}, nil
	}

	placeholders := make([]string, len(lemmas))
	args := make([]any, 0, len(lemmas)+1)
	args = append(args, language)
	for i, lemma := range lemmas {
		placeholders[i] = "?"
		args = append(args, lemma)
	}

	query := fmt.Sprintf(`
		SELECT id, lemma, translation, language, level, frequency
		FROM vocabulary_words
		WHERE language = ? AND lemma IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words by lemmas: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// ValidateWordIDs checks if all word IDs exist in the database
func (r *wordRepository) ValidateWordIDs(ctx context.Context, wordIDs []int) (bool, error) {
	if len(wordIDs) == 0 {
		return true, nil
	}

	placeholders := make([]string, len(wordIDs))
	args := make([]any, len(wordIDs))
	for i, id := range wordIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM vocabulary_words WHERE id IN (%s)`, strings.Join(placeholders, ","))

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to validate word ids: %w", err)
	}

	return count == len(wordIDs), nil
}

// GetBlockingWords retrieves words occurring in a segment that sit above the user's
// level and have not been marked known, ordered by occurrence count
func (r *wordRepository) GetBlockingWords(ctx context.Context, userID, segmentID int, userLevel models.CEFRLevel) ([]models.BlockingWord, error) {
	// CEFR levels compare by position, so FIELD() gives the A1 < A2 < ... < C2 order
	query := `
		SELECT w.id, w.lemma, w.translation, w.language, w.level, w.frequency, sw.occurrences
		FROM segment_words sw
		JOIN vocabulary_words w ON w.id = sw.word_id
		LEFT JOIN user_words uw ON uw.word_id = w.id AND uw.user_id = ? AND uw.known = 1
		WHERE sw.segment_id = ?
		  AND uw.word_id IS NULL
		  AND FIELD(w.level, 'A1', 'A2', 'B1', 'B2', 'C1', 'C2') > FIELD(?, 'A1', 'A2', 'B1', 'B2', 'C1', 'C2')
		ORDER BY sw.occurrences DESC, w.frequency DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, segmentID, userLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking words: %w", err)
	}
	defer rows.Close()

	var words []models.BlockingWord
	for rows.Next() {
		var word models.BlockingWord
		err := rows.Scan(
			&word.ID,
			&word.Lemma,
			&word.Translation,
			&word.Language,
			&word.Level,
			&word.Frequency,
			&word.Occurrences,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blocking word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// Create inserts a new dictionary word
func (r *wordRepository) Create(ctx context.Context, word *models.VocabularyWord) error {
	query := `
		INSERT INTO vocabulary_words (lemma, translation, language, level, frequency)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, word.Lemma, word.Translation, word.Language, word.Level, word.Frequency)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	word.ID = int(id)
	return nil
}

// Update updates an existing dictionary word
func (r *wordRepository) Update(ctx context.Context, word *models.VocabularyWord) error {
	query := `
		UPDATE vocabulary_words
		SET lemma = ?, translation = ?, language = ?, level = ?, frequency = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, word.Lemma, word.Translation, word.Language, word.Level, word.Frequency, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("word not found")
	}

	return nil
}

// Delete removes a dictionary word
func (r *wordRepository) Delete(ctx context.Context, wordID int) error {
	query := `DELETE FROM vocabulary_words WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, wordID)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("word not found")
	}

	return nil
}

// scanWords reads vocabulary word rows
func scanWords(rows *sql.Rows) ([]models.VocabularyWord, error) {
	var words []models.VocabularyWord
	for rows.Next() {
		var word models.VocabularyWord
		err := rows.Scan(
			&word.ID,
			&word.Lemma,
			&word.Translation,
			&word.Language,
			&word.Level,
			&word.Frequency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}
