package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/services"
	"go.uber.org/zap"
)

// ProcessService is the interface that wraps methods for processing job business logic.
type ProcessService interface {
	// Method Enqueue creates a processing job for an episode and puts it on the queue.
	//
	// If the episode already has a pending or running job, services.ErrJobConflict will be returned together with "nil" value for the job.
	Enqueue(ctx context.Context, episodeID int) (*models.ProcessJob, error)
	// Method GetJob retrieves a processing job by ID.
	GetJob(ctx context.Context, jobID int) (*models.ProcessJob, error)
}

// ProcessHandler handles processing job HTTP requests
type ProcessHandler struct {
	BaseHandler
	processService ProcessService
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(processService ProcessService, logger *zap.Logger) *ProcessHandler {
	return &ProcessHandler{
		BaseHandler:    BaseHandler{logger: logger},
		processService: processService,
	}
}

// RegisterRoutes registers all process handler routes
// Note: The router passed here must already enforce the admin role
func (h *ProcessHandler) RegisterRoutes(r chi.Router) {
	r.Route("/process", func(r chi.Router) {
		r.Post("/", h.Enqueue)
		r.Get("/{id}", h.GetJob)
	})
}

// Enqueue handles POST /process
// @Summary Enqueue episode processing
// @Description Create a processing job for an episode and enqueue it for the background worker. Only one active job per episode is allowed.
// @Tags process
// @Accept json
// @Produce json
// @Param request body models.ProcessRequest true "Episode to process"
// @Success 202 {object} models.ProcessJob
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Episode not found"
// @Failure 409 {object} map[string]string "Episode already has an active job"
// @Security BearerAuth
// @Router /process [post]
func (h *ProcessHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.EpisodeID <= 0 {
		h.respondError(w, http.StatusBadRequest, "episode_id is required")
		return
	}

	job, err := h.processService.Enqueue(r.Context(), req.EpisodeID)
	if err != nil {
		if errors.Is(err, services.ErrJobConflict) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("failed to enqueue processing job", zap.Error(err), zap.Int("episode_id", req.EpisodeID))
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusAccepted, job)
}

// GetJob handles GET /process/{id}
// @Summary Get processing job status
// @Description Get the status of a processing job, including the error message when the job failed.
// @Tags process
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} models.ProcessJob
// @Failure 400 {object} map[string]string "Invalid job ID"
// @Failure 404 {object} map[string]string "Job not found"
// @Security BearerAuth
// @Router /process/{id} [get]
func (h *ProcessHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || jobID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := h.processService.GetJob(r.Context(), jobID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to get processing job", zap.Error(err), zap.Int("job_id", jobID))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}
