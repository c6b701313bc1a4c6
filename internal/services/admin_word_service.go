package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/langplug/backend/internal/models"
)

// AdminWordRepository is the interface that wraps write methods for VocabularyWord table data access
type AdminWordRepository interface {
	// Create inserts a new dictionary word.
	Create(ctx context.Context, word *models.VocabularyWord) error
	// Update updates an existing dictionary word.
	Update(ctx context.Context, word *models.VocabularyWord) error
	// Delete removes a dictionary word.
	Delete(ctx context.Context, wordID int) error
}

// adminWordService implements AdminWordService
type adminWordService struct {
	wordRepo AdminWordRepository
}

// NewAdminWordService creates a new admin word service
func NewAdminWordService(wordRepo AdminWordRepository) *adminWordService {
	return &adminWordService{
		wordRepo: wordRepo,
	}
}

// CreateWord validates and inserts a new dictionary word
func (s *adminWordService) CreateWord(ctx context.Context, req *models.WordUpsertRequest) (*models.VocabularyWord, error) {
	word, err := wordFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.wordRepo.Create(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

// UpdateWord validates and updates an existing dictionary word
func (s *adminWordService) UpdateWord(ctx context.Context, wordID int, req *models.WordUpsertRequest) (*models.VocabularyWord, error) {
	word, err := wordFromRequest(req)
	if err != nil {
		return nil, err
	}
	word.ID = wordID

	if err := s.wordRepo.Update(ctx, word); err != nil {
		return nil, err
	}

	return word, nil
}

// DeleteWord removes a dictionary word
func (s *adminWordService) DeleteWord(ctx context.Context, wordID int) error {
	return s.wordRepo.Delete(ctx, wordID)
}

// wordFromRequest validates an upsert request and converts it to a model.
// Lemmas are stored lowercase so subtitle token matching stays case-insensitive.
func wordFromRequest(req *models.WordUpsertRequest) (*models.VocabularyWord, error) {
	lemma := strings.ToLower(strings.TrimSpace(req.Lemma))
	if lemma == "" {
		return nil, fmt.Errorf("lemma is required")
	}

	translation := strings.TrimSpace(req.Translation)
	if translation == "" {
		return nil, fmt.Errorf("translation is required")
	}

	if len(req.Language) != 2 {
		return nil, fmt.Errorf("language must be an ISO 639-1 code")
	}

	if !req.Level.Valid() {
		return nil, fmt.Errorf("invalid level: %s", req.Level)
	}

	if req.Frequency < 0 {
		return nil, fmt.Errorf("frequency cannot be negative")
	}

	return &models.VocabularyWord{
		Lemma:       lemma,
		Translation: translation,
		Language:    strings.ToLower(req.Language),
		Level:       req.Level,
		Frequency:   req.Frequency,
	}, nil
}
