package services

import (
	"context"
	"fmt"
	"io"

	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/subtitles"
	"go.uber.org/zap"
)

// PipelineJobRepository is the interface that wraps job state transitions used by the pipeline
type PipelineJobRepository interface {
	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, jobID int) (*models.ProcessJob, error)
	// MarkRunning moves a job from pending to running.
	MarkRunning(ctx context.Context, jobID int) error
	// Finish marks a job done or failed with an optional error message.
	Finish(ctx context.Context, jobID int, status models.ProcessJobStatus, errorMessage string) error
}

// PipelineEpisodeRepository is the interface that wraps episode methods used by the pipeline
type PipelineEpisodeRepository interface {
	GetByID(ctx context.Context, episodeID int) (*models.Episode, error)
	UpdateStatus(ctx context.Context, episodeID int, status models.EpisodeStatus) error
	UpdateDuration(ctx context.Context, episodeID, durationSeconds int) error
}

// PipelineSegmentRepository is the interface that wraps segment methods used by the pipeline
type PipelineSegmentRepository interface {
	// ReplaceForEpisode deletes all segments of an episode and inserts the new ones.
	ReplaceForEpisode(ctx context.Context, episodeID int, segments []models.VideoSegment) error
	// ReplaceSegmentWords replaces the word occurrence links of a segment.
	ReplaceSegmentWords(ctx context.Context, segmentID int, occurrences map[int]int) error
}

// PipelineSubtitleRepository is the interface that wraps cue insertion used by the pipeline
type PipelineSubtitleRepository interface {
	InsertCues(ctx context.Context, segmentID int, cues []models.SubtitleCue) error
}

// LemmaRepository is the interface that wraps dictionary lookup used by the pipeline
type LemmaRepository interface {
	// GetByLemmas retrieves words matching any of the given lemmas for a language.
	GetByLemmas(ctx context.Context, language string, lemmas []string) ([]models.VocabularyWord, error)
}

// SubtitleSource is the interface that wraps storage access used by the pipeline
type SubtitleSource interface {
	OpenPath(relPath string) (io.ReadCloser, error)
}

// pipelineService turns an uploaded episode into segments, cues and word links
type pipelineService struct {
	jobRepo      PipelineJobRepository
	episodeRepo  PipelineEpisodeRepository
	segmentRepo  PipelineSegmentRepository
	subtitleRepo PipelineSubtitleRepository
	wordRepo     LemmaRepository
	store        SubtitleSource
	chunkSeconds int
	logger       *zap.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	jobRepo PipelineJobRepository,
	episodeRepo PipelineEpisodeRepository,
	segmentRepo PipelineSegmentRepository,
	subtitleRepo PipelineSubtitleRepository,
	wordRepo LemmaRepository,
	store SubtitleSource,
	chunkSeconds int,
	logger *zap.Logger,
) *pipelineService {
	return &pipelineService{
		jobRepo:      jobRepo,
		episodeRepo:  episodeRepo,
		segmentRepo:  segmentRepo,
		subtitleRepo: subtitleRepo,
		wordRepo:     wordRepo,
		store:        store,
		chunkSeconds: chunkSeconds,
		logger:       logger,
	}
}

// ProcessJob runs the full processing pipeline for one job.
// Reprocessing is idempotent: segment replacement wipes earlier cues and word
// links before the new ones are written.
func (s *pipelineService) ProcessJob(ctx context.Context, jobID int) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		// Job was deleted before processing, meaning we decided not to execute it
		if err.Error() == "process job not found" {
			return nil
		}
		return err
	}

	if err := s.jobRepo.MarkRunning(ctx, job.ID); err != nil {
		// Another worker picked the job up first
		s.logger.Warn("skipping job not in pending state", zap.Int("job_id", job.ID))
		return nil
	}

	if err := s.processEpisode(ctx, job.EpisodeID); err != nil {
		s.logger.Error("episode processing failed",
			zap.Error(err),
			zap.Int("job_id", job.ID),
			zap.Int("episode_id", job.EpisodeID),
		)
		if updErr := s.episodeRepo.UpdateStatus(ctx, job.EpisodeID, models.EpisodeStatusFailed); updErr != nil {
			s.logger.Error("failed to mark episode failed", zap.Error(updErr), zap.Int("episode_id", job.EpisodeID))
		}
		if finErr := s.jobRepo.Finish(ctx, job.ID, models.ProcessJobStatusFailed, err.Error()); finErr != nil {
			s.logger.Error("failed to mark job failed", zap.Error(finErr), zap.Int("job_id", job.ID))
		}
		return err
	}

	if err := s.jobRepo.Finish(ctx, job.ID, models.ProcessJobStatusDone, ""); err != nil {
		return err
	}

	s.logger.Info("episode processed",
		zap.Int("job_id", job.ID),
		zap.Int("episode_id", job.EpisodeID),
	)
	return nil
}

// processEpisode parses the subtitle file, chunks the episode and links vocabulary
func (s *pipelineService) processEpisode(ctx context.Context, episodeID int) error {
	episode, err := s.episodeRepo.GetByID(ctx, episodeID)
	if err != nil {
		return err
	}

	if err := s.episodeRepo.UpdateStatus(ctx, episodeID, models.EpisodeStatusProcessing); err != nil {
		return err
	}

	rc, err := s.store.OpenPath(episode.SubtitlePath)
	if err != nil {
		return fmt.Errorf("failed to open subtitle file: %w", err)
	}
	cues, err := subtitles.Parse(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	if len(cues) == 0 {
		return fmt.Errorf("no cues in subtitle file")
	}

	duration := episode.DurationSeconds
	if duration <= 0 {
		// Duration was not known at upload time; derive it from the last cue
		duration = (cues[len(cues)-1].EndMS + 999) / 1000
		if err := s.episodeRepo.UpdateDuration(ctx, episodeID, duration); err != nil {
			return err
		}
	}

	segments := buildSegments(duration, s.chunkSeconds)
	if err := s.segmentRepo.ReplaceForEpisode(ctx, episodeID, segments); err != nil {
		return err
	}

	perSegment := assignCues(cues, segments, s.chunkSeconds)

	for i := range segments {
		segmentCues := perSegment[i]
		if err := s.subtitleRepo.InsertCues(ctx, segments[i].ID, segmentCues); err != nil {
			return err
		}

		occurrences, err := s.linkWords(ctx, episode.Language, segmentCues)
		if err != nil {
			return err
		}
		if err := s.segmentRepo.ReplaceSegmentWords(ctx, segments[i].ID, occurrences); err != nil {
			return err
		}
	}

	return s.episodeRepo.UpdateStatus(ctx, episodeID, models.EpisodeStatusReady)
}

// linkWords tokenizes segment cues and maps tokens onto dictionary word IDs with counts
func (s *pipelineService) linkWords(ctx context.Context, language string, cues []models.SubtitleCue) (map[int]int, error) {
	tokenCounts := make(map[string]int)
	for _, cue := range cues {
		for _, token := range subtitles.Tokens(cue.Text) {
			tokenCounts[token]++
		}
	}

	if len(tokenCounts) == 0 {
		return map[int]int{}, nil
	}

	lemmas := make([]string, 0, len(tokenCounts))
	for lemma := range tokenCounts {
		lemmas = append(lemmas, lemma)
	}

	words, err := s.wordRepo.GetByLemmas(ctx, language, lemmas)
	if err != nil {
		return nil, err
	}

	occurrences := make(map[int]int, len(words))
	for _, word := range words {
		if count := tokenCounts[word.Lemma]; count > 0 {
			occurrences[word.ID] = count
		}
	}
	return occurrences, nil
}

// buildSegments splits a duration into fixed-length chunks; the last chunk is shorter
func buildSegments(durationSeconds, chunkSeconds int) []models.VideoSegment {
	if durationSeconds <= 0 {
		durationSeconds = chunkSeconds
	}

	count := (durationSeconds + chunkSeconds - 1) / chunkSeconds
	segments := make([]models.VideoSegment, count)
	for i := 0; i < count; i++ {
		end := (i + 1) * chunkSeconds
		if end > durationSeconds {
			end = durationSeconds
		}
		segments[i] = models.VideoSegment{
			SegmentIndex: i,
			StartSeconds: i * chunkSeconds,
			EndSeconds:   end,
		}
	}
	return segments
}

// assignCues distributes cues over segments by their start time.
// Cues starting past the last segment clamp to it.
func assignCues(cues []subtitles.Cue, segments []models.VideoSegment, chunkSeconds int) map[int][]models.SubtitleCue {
	perSegment := make(map[int][]models.SubtitleCue, len(segments))

	for _, cue := range cues {
		idx := cue.StartMS / 1000 / chunkSeconds
		if idx >= len(segments) {
			idx = len(segments) - 1
		}

		perSegment[idx] = append(perSegment[idx], models.SubtitleCue{
			CueIndex: len(perSegment[idx]),
			StartMS:  cue.StartMS,
			EndMS:    cue.EndMS,
			Text:     cue.Text,
		})
	}

	return perSegment
}
