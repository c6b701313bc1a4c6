package services

import (
	"context"
	"errors"
	"testing"

	"github.com/langplug/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockWordRepository is a mock implementation of WordRepository
type mockWordRepository struct {
	words         []models.VocabularyWord
	blockingWords []models.BlockingWord
	valid         bool
	err           error
	validateErr   error
	blockingErr   error
}

func (m *mockWordRepository) List(ctx context.Context, level models.CEFRLevel, limit, offset int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) ValidateWordIDs(ctx context.Context, wordIDs []int) (bool, error) {
	if m.validateErr != nil {
		return false, m.validateErr
	}
	return m.valid, nil
}

func (m *mockWordRepository) GetBlockingWords(ctx context.Context, userID, segmentID int, userLevel models.CEFRLevel) ([]models.BlockingWord, error) {
	if m.blockingErr != nil {
		return nil, m.blockingErr
	}
	return m.blockingWords, nil
}

// mockUserWordRepository is a mock implementation of UserWordRepository
type mockUserWordRepository struct {
	knownWords []models.VocabularyWord
	stats      []models.LevelStats
	err        error
	setErr     error

	setUserID  int
	setWordIDs []int
	setKnown   bool
}

func (m *mockUserWordRepository) SetKnown(ctx context.Context, userID int, wordIDs []int, known bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setUserID = userID
	m.setWordIDs = wordIDs
	m.setKnown = known
	return nil
}

func (m *mockUserWordRepository) GetKnownWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.knownWords, nil
}

func (m *mockUserWordRepository) GetLevelStats(ctx context.Context, userID int) ([]models.LevelStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

// mockSegmentReader is a mock implementation of SegmentReader
type mockSegmentReader struct {
	segment *models.VideoSegment
	err     error
}

func (m *mockSegmentReader) GetByEpisodeAndIndex(ctx context.Context, episodeID, segmentIndex int) (*models.VideoSegment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.segment, nil
}

// mockUserLevelReader is a mock implementation of UserLevelReader
type mockUserLevelReader struct {
	user *models.User
	err  error
}

func (m *mockUserLevelReader) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func TestVocabularyService_ListWords(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		level         models.CEFRLevel
		limit         int
		offset        int
		wordRepo      *mockWordRepository
		expectedError bool
		errorContains string
		expectedCount int
	}{
		{
			name:  "success with level filter",
			level: models.LevelA1,
			limit: 10,
			wordRepo: &mockWordRepository{
				words: []models.VocabularyWord{
					{ID: 1, Lemma: "haus", Level: models.LevelA1},
					{ID: 2, Lemma: "hund", Level: models.LevelA1},
				},
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:          "success without level filter",
			level:         "",
			limit:         10,
			wordRepo:      &mockWordRepository{words: []models.VocabularyWord{{ID: 1}}},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:          "invalid level",
			level:         "Z9",
			limit:         10,
			wordRepo:      &mockWordRepository{},
			expectedError: true,
			errorContains: "invalid level",
		},
		{
			name:          "repository error",
			level:         models.LevelA1,
			limit:         10,
			wordRepo:      &mockWordRepository{err: errors.New("database error")},
			expectedError: true,
			errorContains: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVocabularyService(tt.wordRepo, &mockUserWordRepository{}, &mockSegmentReader{}, &mockUserLevelReader{}, logger)

			words, err := svc.ListWords(context.Background(), tt.level, tt.limit, tt.offset)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Len(t, words, tt.expectedCount)
		})
	}
}

func TestVocabularyService_MarkWords(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		wordIDs       []int
		known         bool
		wordRepo      *mockWordRepository
		userWordRepo  *mockUserWordRepository
		expectedError bool
		errorContains string
	}{
		{
			name:          "success - mark known",
			wordIDs:       []int{1, 2, 3},
			known:         true,
			wordRepo:      &mockWordRepository{valid: true},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: false,
		},
		{
			name:          "success - mark unknown",
			wordIDs:       []int{1},
			known:         false,
			wordRepo:      &mockWordRepository{valid: true},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: false,
		},
		{
			name:          "empty batch",
			wordIDs:       []int{},
			known:         true,
			wordRepo:      &mockWordRepository{valid: true},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: true,
			errorContains: "cannot be empty",
		},
		{
			name:          "batch too large",
			wordIDs:       make([]int, 101),
			known:         true,
			wordRepo:      &mockWordRepository{valid: true},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: true,
			errorContains: "cannot exceed",
		},
		{
			name:          "unknown word id rejects whole batch",
			wordIDs:       []int{1, 999},
			known:         true,
			wordRepo:      &mockWordRepository{valid: false},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: true,
			errorContains: "do not exist",
		},
		{
			name:          "validation error",
			wordIDs:       []int{1},
			known:         true,
			wordRepo:      &mockWordRepository{validateErr: errors.New("database error")},
			userWordRepo:  &mockUserWordRepository{},
			expectedError: true,
			errorContains: "failed to validate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVocabularyService(tt.wordRepo, tt.userWordRepo, &mockSegmentReader{}, &mockUserLevelReader{}, logger)

			err := svc.MarkWords(context.Background(), 7, tt.wordIDs, tt.known)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 7, tt.userWordRepo.setUserID)
			assert.Equal(t, tt.wordIDs, tt.userWordRepo.setWordIDs)
			assert.Equal(t, tt.known, tt.userWordRepo.setKnown)
		})
	}
}

func TestVocabularyService_GetBlockingWords(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		segmentIndex  int
		wordRepo      *mockWordRepository
		segmentRepo   *mockSegmentReader
		userRepo      *mockUserLevelReader
		expectedError bool
		expectedCount int
	}{
		{
			name:         "success with blocking words",
			segmentIndex: 0,
			wordRepo: &mockWordRepository{
				blockingWords: []models.BlockingWord{
					{VocabularyWord: models.VocabularyWord{ID: 1, Lemma: "verantwortung", Level: models.LevelB1}, Occurrences: 3},
				},
			},
			segmentRepo:   &mockSegmentReader{segment: &models.VideoSegment{ID: 4}},
			userRepo:      &mockUserLevelReader{user: &models.User{ID: 7, Level: models.LevelA1}},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:          "success with no blocking words returns empty slice",
			segmentIndex:  0,
			wordRepo:      &mockWordRepository{},
			segmentRepo:   &mockSegmentReader{segment: &models.VideoSegment{ID: 4}},
			userRepo:      &mockUserLevelReader{user: &models.User{ID: 7, Level: models.LevelA1}},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:          "negative segment index",
			segmentIndex:  -1,
			wordRepo:      &mockWordRepository{},
			segmentRepo:   &mockSegmentReader{},
			userRepo:      &mockUserLevelReader{},
			expectedError: true,
		},
		{
			name:          "segment not found",
			segmentIndex:  0,
			wordRepo:      &mockWordRepository{},
			segmentRepo:   &mockSegmentReader{err: errors.New("video segment not found")},
			userRepo:      &mockUserLevelReader{user: &models.User{ID: 7, Level: models.LevelA1}},
			expectedError: true,
		},
		{
			name:          "user not found",
			segmentIndex:  0,
			wordRepo:      &mockWordRepository{},
			segmentRepo:   &mockSegmentReader{segment: &models.VideoSegment{ID: 4}},
			userRepo:      &mockUserLevelReader{err: errors.New("user not found")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVocabularyService(tt.wordRepo, &mockUserWordRepository{}, tt.segmentRepo, tt.userRepo, logger)

			words, err := svc.GetBlockingWords(context.Background(), 7, 1, tt.segmentIndex)

			if tt.expectedError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, words)
			assert.Len(t, words, tt.expectedCount)
		})
	}
}
