package services

import (
	"context"
	"fmt"

	"github.com/langplug/backend/internal/models"
)

// ProfileRepository is the interface that wraps User table methods used by the profile service
type ProfileRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// UpdateProfile updates the learner profile fields of a user.
	UpdateProfile(ctx context.Context, userID int, nativeLanguage, targetLanguage string, level models.CEFRLevel) error
}

// profileService implements ProfileService
type profileService struct {
	userRepo ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo ProfileRepository) *profileService {
	return &profileService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves the user's profile
func (s *profileService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile validates and updates the learner profile
func (s *profileService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	if !req.Level.Valid() {
		return nil, fmt.Errorf("invalid level: %s, must be one of A1, A2, B1, B2, C1, C2", req.Level)
	}

	if req.NativeLanguage == "" || req.TargetLanguage == "" {
		return nil, fmt.Errorf("nativeLanguage and targetLanguage are required")
	}
	if len(req.NativeLanguage) != 2 || len(req.TargetLanguage) != 2 {
		return nil, fmt.Errorf("languages must be ISO 639-1 codes")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.NativeLanguage, req.TargetLanguage, req.Level); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}
