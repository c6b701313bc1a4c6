// Package services contains the business logic between handlers and repositories
package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserSharedRepository is the interface that wraps methods for User table data access common for auth and profile services
type UserSharedRepository interface {
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// "username" parameter is used to check if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	UserSharedRepository
	// Method Create inserts a new user into the database.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmailOrUsername retrieves a user by email or username.
	//
	// If user with such email or username does not exist, the error will be returned together with "nil" value.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Create inserts a new refresh token into the database.
	Create(ctx context.Context, userToken *models.UserToken) error
	// GetByToken retrieves a user token by token string.
	//
	// If user token with such token does not exist, the error will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// UpdateToken replaces an old refresh token with a new one for a user.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// DeleteByToken deletes a user token by token string.
	DeleteByToken(ctx context.Context, token string) error
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *auth.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, number, special: !_?^&+-=|
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
	regexp.MustCompile(`[!_?^&+\-=|]`),
}

// Register creates a new user account with default learner settings (A1, German)
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	normalizedEmail, normalizedUsername, err := s.checkRegisterCredentials(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return "", "", err
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	user := &models.User{
		Username:       normalizedUsername,
		Email:          normalizedEmail,
		PasswordHash:   string(passwordHash),
		Role:           models.RoleUser, // Default role
		NativeLanguage: "en",
		TargetLanguage: "de",
		Level:          models.LevelA1,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}

	return s.generateAndSaveTokens(ctx, user.ID, user.Role)
}

// Login authenticates a user by email or username
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" {
		return "", "", fmt.Errorf("login cannot be empty")
	}

	if req.Password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, req.Login)
	if err != nil {
		return "", "", err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}

	return s.generateAndSaveTokens(ctx, user.ID, user.Role)
}

// Refresh rotates a refresh token and returns a new token pair
//
// The JWT validation and the database lookup are independent, so both checks run
// in parallel goroutines before the stored token is replaced.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if refresh token exists in database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- fmt.Errorf("failed to get user token by refresh token: %w", err)
			userTokenChan <- nil
			return
		}
		errorChan <- nil
		userTokenChan <- userToken
	}()

	// Validate the refresh token JWT itself
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			errorChan <- fmt.Errorf("invalid refresh token: %w", err)
			return
		}
		errorChan <- nil
	}()

	for i := 0; i < 2; i++ {
		if err := <-errorChan; err != nil {
			// Revoke the stored token on any validation failure
			if delErr := s.userTokenRepo.DeleteByToken(ctx, refreshToken); delErr != nil {
				s.logger.Warn("failed to delete refresh token", zap.Error(delErr))
			}
			return "", "", err
		}
	}

	userToken := <-userTokenChan

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if err != nil {
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}

	if err = s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, user.ID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout revokes the given refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return fmt.Errorf("refresh token required")
	}

	return s.userTokenRepo.DeleteByToken(ctx, refreshToken)
}

// checkRegisterCredentials validates registration input and returns normalized email and username
func (s *authService) checkRegisterCredentials(ctx context.Context, email, username, password string) (string, string, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	normalizedUsername := strings.TrimSpace(username)

	if !emailRegex.MatchString(normalizedEmail) {
		return "", "", fmt.Errorf("invalid email format")
	}

	if len(normalizedUsername) < 3 || len(normalizedUsername) > 32 {
		return "", "", fmt.Errorf("invalid username: must be 3-32 characters")
	}

	for _, re := range passwordRegex {
		if !re.MatchString(password) {
			return "", "", fmt.Errorf("invalid password: must be at least 8 characters with uppercase, lowercase, number and special character")
		}
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return "", "", fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return "", "", fmt.Errorf("user with this email already exists")
	}

	usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
	if err != nil {
		return "", "", fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return "", "", fmt.Errorf("user with this username already exists")
	}

	return normalizedEmail, normalizedUsername, nil
}

// generateAndSaveTokens generates a token pair and stores the refresh token
func (s *authService) generateAndSaveTokens(ctx context.Context, userID int, role models.Role) (string, string, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(userID, role)
	if err != nil {
		return "", "", err
	}

	userToken := &models.UserToken{
		UserID: userID,
		Token:  refreshToken,
	}
	if err = s.userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// TokenCleaner deletes refresh tokens older than the refresh expiry.
// Used by the maintenance scheduler and the API-key protected admin endpoint.
type TokenCleanerRepository interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type tokenCleaningService struct {
	userTokenRepo TokenCleanerRepository
	refreshExpiry time.Duration
	logger        *zap.Logger
}

// NewTokenCleaningService creates a new token cleaning service
func NewTokenCleaningService(userTokenRepo TokenCleanerRepository, refreshExpiry time.Duration, logger *zap.Logger) *tokenCleaningService {
	return &tokenCleaningService{
		userTokenRepo: userTokenRepo,
		refreshExpiry: refreshExpiry,
		logger:        logger,
	}
}

// CleanExpired deletes refresh tokens that can no longer be used
func (s *tokenCleaningService) CleanExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.refreshExpiry)
	deleted, err := s.userTokenRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("deleted expired refresh tokens", zap.Int64("count", deleted))
	}
	return deleted, nil
}
