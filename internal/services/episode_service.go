package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/storage"
	"go.uber.org/zap"
)

// EpisodeRepository is the interface that wraps methods for Episode table data access
type EpisodeRepository interface {
	// Create inserts a new episode.
	Create(ctx context.Context, episode *models.Episode) error
	// GetByID retrieves an episode by ID.
	GetByID(ctx context.Context, episodeID int) (*models.Episode, error)
	// ListReady retrieves all episodes that finished processing.
	ListReady(ctx context.Context) ([]models.Episode, error)
}

// SegmentRepository is the interface that wraps methods for VideoSegment table data access
type SegmentRepository interface {
	SegmentReader
	// GetByEpisode retrieves all segments of an episode ordered by index.
	GetByEpisode(ctx context.Context, episodeID int) ([]models.VideoSegment, error)
}

// SubtitleRepository is the interface that wraps methods for SubtitleCue table data access
type SubtitleRepository interface {
	// GetBySegment retrieves all cues of a segment ordered by cue index.
	GetBySegment(ctx context.Context, segmentID int) ([]models.SubtitleCue, error)
}

// MediaStorage is the interface that wraps file storage used for uploaded media
type MediaStorage interface {
	Create(id, mediaType string) (io.WriteCloser, error)
	Open(id, mediaType string) (io.ReadCloser, error)
	Path(id, mediaType string) string
}

// Media type folders under the storage base path
const (
	MediaTypeVideo    = "videos"
	MediaTypeSubtitle = "subtitles"
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
}

// episodeService implements EpisodeService
type episodeService struct {
	episodeRepo  EpisodeRepository
	segmentRepo  SegmentRepository
	subtitleRepo SubtitleRepository
	store        MediaStorage
	logger       *zap.Logger
}

// NewEpisodeService creates a new episode service
func NewEpisodeService(
	episodeRepo EpisodeRepository,
	segmentRepo SegmentRepository,
	subtitleRepo SubtitleRepository,
	store MediaStorage,
	logger *zap.Logger,
) *episodeService {
	return &episodeService{
		episodeRepo:  episodeRepo,
		segmentRepo:  segmentRepo,
		subtitleRepo: subtitleRepo,
		store:        store,
		logger:       logger,
	}
}

// ListEpisodes retrieves all episodes ready for learning
func (s *episodeService) ListEpisodes(ctx context.Context) ([]models.Episode, error) {
	episodes, err := s.episodeRepo.ListReady(ctx)
	if err != nil {
		return nil, err
	}
	if episodes == nil {
		episodes = []models.Episode{}
	}
	return episodes, nil
}

// GetEpisode retrieves an episode together with its segments
func (s *episodeService) GetEpisode(ctx context.Context, episodeID int) (*models.EpisodeDetail, error) {
	episode, err := s.episodeRepo.GetByID(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	segments, err := s.segmentRepo.GetByEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []models.VideoSegment{}
	}

	return &models.EpisodeDetail{
		Episode:  *episode,
		Segments: segments,
	}, nil
}

// GetSegmentSubtitles retrieves the subtitle cues of one segment
func (s *episodeService) GetSegmentSubtitles(ctx context.Context, episodeID, segmentIndex int) ([]models.SubtitleCue, error) {
	if segmentIndex < 0 {
		return nil, fmt.Errorf("segment index cannot be negative")
	}

	segment, err := s.segmentRepo.GetByEpisodeAndIndex(ctx, episodeID, segmentIndex)
	if err != nil {
		return nil, err
	}

	cues, err := s.subtitleRepo.GetBySegment(ctx, segment.ID)
	if err != nil {
		return nil, err
	}
	if cues == nil {
		cues = []models.SubtitleCue{}
	}
	return cues, nil
}

// CreateEpisode stores the uploaded video and subtitle files and creates a
// pending episode. Processing is a separate step triggered via the process API.
func (s *episodeService) CreateEpisode(ctx context.Context, title, language string, video io.Reader, videoFilename string, subtitle io.Reader, subtitleFilename string) (*models.Episode, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(language) != 2 {
		return nil, fmt.Errorf("language must be an ISO 639-1 code")
	}

	videoExt := strings.ToLower(filepath.Ext(videoFilename))
	if !allowedVideoExtensions[videoExt] {
		return nil, fmt.Errorf("unsupported video format: %s", videoExt)
	}

	subtitleExt := strings.ToLower(filepath.Ext(subtitleFilename))
	if subtitleExt != ".srt" {
		return nil, fmt.Errorf("unsupported subtitle format: %s, only .srt is accepted", subtitleExt)
	}

	videoID, err := s.storeFile(video, videoExt, MediaTypeVideo)
	if err != nil {
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	subtitleID, err := s.storeFile(subtitle, subtitleExt, MediaTypeSubtitle)
	if err != nil {
		return nil, fmt.Errorf("failed to store subtitle: %w", err)
	}

	episode := &models.Episode{
		Title:        title,
		Language:     strings.ToLower(language),
		VideoPath:    s.store.Path(videoID, MediaTypeVideo),
		SubtitlePath: s.store.Path(subtitleID, MediaTypeSubtitle),
		Status:       models.EpisodeStatusPending,
	}

	if err := s.episodeRepo.Create(ctx, episode); err != nil {
		return nil, err
	}

	s.logger.Info("episode created",
		zap.Int("episode_id", episode.ID),
		zap.String("title", episode.Title),
	)
	return episode, nil
}

// storeFile writes a file into storage under a generated UUID name
func (s *episodeService) storeFile(src io.Reader, extension, mediaType string) (string, error) {
	id := storage.GenerateFileName(extension)

	dst, err := s.store.Create(id, mediaType)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}

	if err := dst.Close(); err != nil {
		return "", err
	}

	return id, nil
}
