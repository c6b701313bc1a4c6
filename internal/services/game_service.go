package services

import (
	"context"
	"fmt"

	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// GameSessionRepository is the interface that wraps methods for GameSession table data access
type GameSessionRepository interface {
	// Create inserts a new session starting at segment 0.
	Create(ctx context.Context, session *models.GameSession) error
	// GetByID retrieves a session by ID.
	GetByID(ctx context.Context, sessionID int) (*models.GameSession, error)
	// GetOpenByUserAndEpisode retrieves the user's uncompleted session for an episode.
	//
	// If no open session exists, the error will be returned together with "nil" value.
	GetOpenByUserAndEpisode(ctx context.Context, userID, episodeID int) (*models.GameSession, error)
	// UpdateSegmentIndex advances a session to the given segment index.
	UpdateSegmentIndex(ctx context.Context, sessionID, segmentIndex int) error
	// Complete marks a session as completed.
	Complete(ctx context.Context, sessionID int) error
	// UpsertProgress records an answer for a word within a session.
	UpsertProgress(ctx context.Context, sessionID, wordID int, correct bool) error
	// GetProgress retrieves all progress rows of a session.
	GetProgress(ctx context.Context, sessionID int) ([]models.SessionProgress, error)
	// GetCorrectWordIDs retrieves the word IDs answered correctly in a session.
	GetCorrectWordIDs(ctx context.Context, sessionID int) ([]int, error)
}

// SegmentCounter is the interface that wraps segment counting used by the game service
type SegmentCounter interface {
	SegmentReader
	CountByEpisode(ctx context.Context, episodeID int) (int, error)
}

// BlockingWordReader is the interface that wraps blocking word lookup used by the game service
type BlockingWordReader interface {
	GetBlockingWords(ctx context.Context, userID, segmentID int, userLevel models.CEFRLevel) ([]models.BlockingWord, error)
}

// ErrSegmentBlocked is returned when unresolved blocking words gate progression
var ErrSegmentBlocked = fmt.Errorf("segment has unresolved blocking words")

// ErrNotSessionOwner is returned when a user touches another user's session
var ErrNotSessionOwner = fmt.Errorf("session belongs to another user")

// gameService implements GameService
type gameService struct {
	sessionRepo GameSessionRepository
	episodeRepo EpisodeReader
	segmentRepo SegmentCounter
	wordRepo    BlockingWordReader
	userRepo    UserLevelReader
	logger      *zap.Logger
}

// NewGameService creates a new game service
func NewGameService(
	sessionRepo GameSessionRepository,
	episodeRepo EpisodeReader,
	segmentRepo SegmentCounter,
	wordRepo BlockingWordReader,
	userRepo UserLevelReader,
	logger *zap.Logger,
) *gameService {
	return &gameService{
		sessionRepo: sessionRepo,
		episodeRepo: episodeRepo,
		segmentRepo: segmentRepo,
		wordRepo:    wordRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// StartSession starts a session for an episode, or resumes the user's open one.
// One open session per (user, episode) at a time.
func (s *gameService) StartSession(ctx context.Context, userID, episodeID int) (*models.GameSession, error) {
	episode, err := s.episodeRepo.GetByID(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if episode.Status != models.EpisodeStatusReady {
		return nil, fmt.Errorf("episode is not ready for learning")
	}

	// Resume an existing open session if there is one
	existing, err := s.sessionRepo.GetOpenByUserAndEpisode(ctx, userID, episodeID)
	if err == nil {
		return existing, nil
	}

	session := &models.GameSession{
		UserID:    userID,
		EpisodeID: episodeID,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("game session started",
		zap.Int("session_id", session.ID),
		zap.Int("user_id", userID),
		zap.Int("episode_id", episodeID),
	)
	return session, nil
}

// GetSession retrieves a session with its progress map
func (s *gameService) GetSession(ctx context.Context, userID, sessionID int) (*models.SessionDetail, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	progress, err := s.sessionRepo.GetProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	progressMap := make(map[int]models.SessionProgress, len(progress))
	for _, p := range progress {
		progressMap[p.WordID] = p
	}

	return &models.SessionDetail{
		GameSession: *session,
		Progress:    progressMap,
	}, nil
}

// Answer records a vocabulary answer within a session
func (s *gameService) Answer(ctx context.Context, userID, sessionID int, req *models.AnswerRequest) error {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Completed {
		return fmt.Errorf("session is completed")
	}

	if req.WordID <= 0 {
		return fmt.Errorf("word_id is required")
	}

	return s.sessionRepo.UpsertProgress(ctx, sessionID, req.WordID, req.Correct)
}

// Advance moves a session to the next segment once the current segment's
// blocking words are all resolved: each must be marked known or answered
// correctly within the session. Advancing past the last segment completes
// the session.
func (s *gameService) Advance(ctx context.Context, userID, sessionID int) (*models.GameSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, fmt.Errorf("session is completed")
	}

	unresolved, err := s.unresolvedBlockingCount(ctx, session)
	if err != nil {
		return nil, err
	}
	if unresolved > 0 {
		return nil, ErrSegmentBlocked
	}

	segmentCount, err := s.segmentRepo.CountByEpisode(ctx, session.EpisodeID)
	if err != nil {
		return nil, err
	}

	if session.SegmentIndex+1 >= segmentCount {
		if err := s.sessionRepo.Complete(ctx, session.ID); err != nil {
			return nil, err
		}
		session.Completed = true
		s.logger.Info("game session completed", zap.Int("session_id", session.ID))
		return session, nil
	}

	session.SegmentIndex++
	if err := s.sessionRepo.UpdateSegmentIndex(ctx, session.ID, session.SegmentIndex); err != nil {
		return nil, err
	}

	return session, nil
}

// unresolvedBlockingCount counts blocking words of the current segment not yet
// answered correctly in this session. Words marked known are already excluded
// by the blocking word query itself.
func (s *gameService) unresolvedBlockingCount(ctx context.Context, session *models.GameSession) (int, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return 0, err
	}

	segment, err := s.segmentRepo.GetByEpisodeAndIndex(ctx, session.EpisodeID, session.SegmentIndex)
	if err != nil {
		return 0, err
	}

	blocking, err := s.wordRepo.GetBlockingWords(ctx, session.UserID, segment.ID, user.Level)
	if err != nil {
		return 0, err
	}
	if len(blocking) == 0 {
		return 0, nil
	}

	correctIDs, err := s.sessionRepo.GetCorrectWordIDs(ctx, session.ID)
	if err != nil {
		return 0, err
	}

	correct := make(map[int]bool, len(correctIDs))
	for _, id := range correctIDs {
		correct[id] = true
	}

	unresolved := 0
	for _, word := range blocking {
		if !correct[word.ID] {
			unresolved++
		}
	}
	return unresolved, nil
}

// ownedSession loads a session and checks it belongs to the user
func (s *gameService) ownedSession(ctx context.Context, userID, sessionID int) (*models.GameSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}
