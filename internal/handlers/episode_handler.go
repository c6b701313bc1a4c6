package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// maxUploadSize limits multipart episode uploads to 2 GiB
const maxUploadSize = 2 << 30

// EpisodeService is the interface that wraps methods for episode business logic.
type EpisodeService interface {
	// Method ListEpisodes retrieves all episodes ready for learning.
	ListEpisodes(ctx context.Context) ([]models.Episode, error)
	// Method GetEpisode retrieves an episode together with its segments.
	//
	// If such episode does not exist or some other error occurs, the error will be returned together with "nil" value for the episode.
	GetEpisode(ctx context.Context, episodeID int) (*models.EpisodeDetail, error)
	// Method GetSegmentSubtitles retrieves the subtitle cues of one segment.
	GetSegmentSubtitles(ctx context.Context, episodeID, segmentIndex int) ([]models.SubtitleCue, error)
	// Method CreateEpisode stores the uploaded video and subtitle files and creates a pending episode.
	//
	// If the files have unsupported extensions, or storing fails, or some other error occurs, the error will be returned together with "nil" value for the episode.
	CreateEpisode(ctx context.Context, title, language string, video io.Reader, videoFilename string, subtitle io.Reader, subtitleFilename string) (*models.Episode, error)
}

// EpisodeHandler handles episode-related HTTP requests
type EpisodeHandler struct {
	BaseHandler
	episodeService EpisodeService
}

// NewEpisodeHandler creates a new episode handler
func NewEpisodeHandler(episodeService EpisodeService, logger *zap.Logger) *EpisodeHandler {
	return &EpisodeHandler{
		BaseHandler:    BaseHandler{logger: logger},
		episodeService: episodeService,
	}
}

// RegisterRoutes registers the episode read routes
func (h *EpisodeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/episodes", func(r chi.Router) {
		r.Get("/", h.ListEpisodes)
		r.Get("/{id}", h.GetEpisode)
		r.Get("/{id}/segments/{segment}/subtitles", h.GetSegmentSubtitles)
	})
}

// RegisterAdminRoutes registers the episode upload route
// Note: The router passed here must already enforce the admin role
func (h *EpisodeHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/episodes", h.CreateEpisode)
}

// ListEpisodes handles GET /episodes
// @Summary List episodes
// @Description List all episodes that finished processing and are ready for learning.
// @Tags episodes
// @Produce json
// @Success 200 {array} models.Episode
// @Security BearerAuth
// @Router /episodes [get]
func (h *EpisodeHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.episodeService.ListEpisodes(r.Context())
	if err != nil {
		h.logger.Error("failed to list episodes", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, episodes)
}

// GetEpisode handles GET /episodes/{id}
// @Summary Get episode detail
// @Description Get an episode together with its video segments.
// @Tags episodes
// @Produce json
// @Param id path int true "Episode ID"
// @Success 200 {object} models.EpisodeDetail
// @Failure 400 {object} map[string]string "Invalid episode ID"
// @Failure 404 {object} map[string]string "Episode not found"
// @Security BearerAuth
// @Router /episodes/{id} [get]
func (h *EpisodeHandler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || episodeID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid episode id")
		return
	}

	detail, err := h.episodeService.GetEpisode(r.Context(), episodeID)
	if err != nil {
		h.logger.Error("failed to get episode", zap.Error(err), zap.Int("episode_id", episodeID))
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}

// GetSegmentSubtitles handles GET /episodes/{id}/segments/{segment}/subtitles
// @Summary Get segment subtitles
// @Description Get the subtitle cues of one video segment ordered by cue index.
// @Tags episodes
// @Produce json
// @Param id path int true "Episode ID"
// @Param segment path int true "Segment index"
// @Success 200 {array} models.SubtitleCue
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Episode or segment not found"
// @Security BearerAuth
// @Router /episodes/{id}/segments/{segment}/subtitles [get]
func (h *EpisodeHandler) GetSegmentSubtitles(w http.ResponseWriter, r *http.Request) {
	episodeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || episodeID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid episode id")
		return
	}

	segmentIndex, err := strconv.Atoi(chi.URLParam(r, "segment"))
	if err != nil || segmentIndex < 0 {
		h.respondError(w, http.StatusBadRequest, "invalid segment index")
		return
	}

	cues, err := h.episodeService.GetSegmentSubtitles(r.Context(), episodeID, segmentIndex)
	if err != nil {
		h.logger.Error("failed to get segment subtitles",
			zap.Error(err),
			zap.Int("episode_id", episodeID),
			zap.Int("segment_index", segmentIndex),
		)
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, cues)
}

// CreateEpisode handles POST /admin/episodes
// @Summary Upload a new episode
// @Description Upload a video file and an SRT subtitle file as multipart form data. The episode is created in pending status; trigger processing separately.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Episode title"
// @Param language formData string true "ISO 639-1 language code"
// @Param video formData file true "Video file (.mp4, .webm, .mkv)"
// @Param subtitle formData file true "Subtitle file (.srt)"
// @Success 201 {object} models.Episode
// @Failure 400 {object} map[string]string "Invalid upload"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/episodes [post]
func (h *EpisodeHandler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := r.FormValue("title")
	language := r.FormValue("language")

	video, videoHeader, err := r.FormFile("video")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer video.Close()

	subtitle, subtitleHeader, err := r.FormFile("subtitle")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "subtitle file is required")
		return
	}
	defer subtitle.Close()

	episode, err := h.episodeService.CreateEpisode(
		r.Context(),
		title,
		language,
		video, videoHeader.Filename,
		subtitle, subtitleHeader.Filename,
	)
	if err != nil {
		h.logger.Error("failed to create episode", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, episode)
}
