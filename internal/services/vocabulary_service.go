package services

import (
	"context"
	"fmt"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// WordRepository is the interface that wraps methods for VocabularyWord table data access
type WordRepository interface {
	// List retrieves dictionary words with an optional level filter and pagination.
	List(ctx context.Context, level models.CEFRLevel, limit, offset int) ([]models.VocabularyWord, error)
	// GetByIDs retrieves words by their IDs.
	GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error)
	// ValidateWordIDs checks if all word IDs exist in the database.
	ValidateWordIDs(ctx context.Context, wordIDs []int) (bool, error)
	// GetBlockingWords retrieves unknown too-difficult words occurring in a segment.
	GetBlockingWords(ctx context.Context, userID, segmentID int, userLevel models.CEFRLevel) ([]models.BlockingWord, error)
}

// UserWordRepository is the interface that wraps methods for UserWord table data access
type UserWordRepository interface {
	// SetKnown upserts the known flag for the given words of a user.
	SetKnown(ctx context.Context, userID int, wordIDs []int, known bool) error
	// GetKnownWords retrieves the dictionary words a user has marked known.
	GetKnownWords(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// GetLevelStats returns known/total word counts per CEFR level for a user.
	GetLevelStats(ctx context.Context, userID int) ([]models.LevelStats, error)
}

// SegmentReader is the interface that wraps segment lookup methods used by the vocabulary service
type SegmentReader interface {
	// GetByEpisodeAndIndex retrieves one segment of an episode by its index.
	GetByEpisodeAndIndex(ctx context.Context, episodeID, segmentIndex int) (*models.VideoSegment, error)
}

// UserLevelReader is the interface that wraps user lookup used by the vocabulary service
type UserLevelReader interface {
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

const (
	defaultWordListLimit = 50
	maxWordListLimit     = 200
	maxMarkBatchSize     = 100
)

// vocabularyService implements VocabularyService
type vocabularyService struct {
	wordRepo     WordRepository
	userWordRepo UserWordRepository
	segmentRepo  SegmentReader
	userRepo     UserLevelReader
	logger       *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(
	wordRepo WordRepository,
	userWordRepo UserWordRepository,
	segmentRepo SegmentReader,
	userRepo UserLevelReader,
	logger *zap.Logger,
) *vocabularyService {
	return &vocabularyService{
		wordRepo:     wordRepo,
		userWordRepo: userWordRepo,
		segmentRepo:  segmentRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// ListWords retrieves dictionary words with an optional level filter
func (s *vocabularyService) ListWords(ctx context.Context, level models.CEFRLevel, limit, offset int) ([]models.VocabularyWord, error) {
	if level != "" && !level.Valid() {
		return nil, fmt.Errorf("invalid level: %s", level)
	}
	if limit <= 0 {
		limit = defaultWordListLimit
	}
	if limit > maxWordListLimit {
		limit = maxWordListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.wordRepo.List(ctx, level, limit, offset)
}

// GetKnownWords retrieves the user's known words
func (s *vocabularyService) GetKnownWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	return s.userWordRepo.GetKnownWords(ctx, userID)
}

// MarkWords marks the given words known or unknown for a user.
// All word IDs must exist; partial batches are rejected so the client
// never ends up with a silently half-applied request.
func (s *vocabularyService) MarkWords(ctx context.Context, userID int, wordIDs []int, known bool) error {
	if len(wordIDs) == 0 {
		return fmt.Errorf("word_ids cannot be empty")
	}
	if len(wordIDs) > maxMarkBatchSize {
		return fmt.Errorf("word_ids cannot exceed %d entries", maxMarkBatchSize)
	}

	valid, err := s.wordRepo.ValidateWordIDs(ctx, wordIDs)
	if err != nil {
		s.logger.Error("failed to validate word ids", zap.Error(err))
		return fmt.Errorf("failed to validate word ids: %w", err)
	}
	if !valid {
		return fmt.Errorf("one or more word ids do not exist")
	}

	return s.userWordRepo.SetKnown(ctx, userID, wordIDs, known)
}

// GetBlockingWords retrieves words in a segment that are above the user's level
// and not yet marked known, ordered by occurrence count
func (s *vocabularyService) GetBlockingWords(ctx context.Context, userID, episodeID, segmentIndex int) ([]models.BlockingWord, error) {
	if segmentIndex < 0 {
		return nil, fmt.Errorf("segment index cannot be negative")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	segment, err := s.segmentRepo.GetByEpisodeAndIndex(ctx, episodeID, segmentIndex)
	if err != nil {
		return nil, err
	}

	words, err := s.wordRepo.GetBlockingWords(ctx, userID, segment.ID, user.Level)
	if err != nil {
		s.logger.Error("failed to get blocking words",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("segment_id", segment.ID),
		)
		return nil, err
	}

	if words == nil {
		words = []models.BlockingWord{}
	}
	return words, nil
}

// GetStats returns known/total word counts per CEFR level for a user
func (s *vocabularyService) GetStats(ctx context.Context, userID int) ([]models.LevelStats, error) {
	return s.userWordRepo.GetLevelStats(ctx, userID)
}
