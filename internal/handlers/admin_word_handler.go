package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// AdminWordService is the interface that wraps methods for dictionary management business logic.
type AdminWordService interface {
	// Method CreateWord validates and inserts a new dictionary word.
	CreateWord(ctx context.Context, req *models.WordUpsertRequest) (*models.VocabularyWord, error)
	// Method UpdateWord validates and updates an existing dictionary word.
	UpdateWord(ctx context.Context, wordID int, req *models.WordUpsertRequest) (*models.VocabularyWord, error)
	// Method DeleteWord removes a dictionary word.
	DeleteWord(ctx context.Context, wordID int) error
}

// AdminWordHandler handles dictionary management HTTP requests
type AdminWordHandler struct {
	BaseHandler
	adminWordService AdminWordService
}

// NewAdminWordHandler creates a new admin word handler
func NewAdminWordHandler(adminWordService AdminWordService, logger *zap.Logger) *AdminWordHandler {
	return &AdminWordHandler{
		BaseHandler:      BaseHandler{logger: logger},
		adminWordService: adminWordService,
	}
}

// RegisterRoutes registers all admin word handler routes
// Note: The router passed here must already enforce the admin role
func (h *AdminWordHandler) RegisterRoutes(r chi.Router) {
	r.Route("/words", func(r chi.Router) {
		r.Post("/", h.CreateWord)
		r.Put("/{id}", h.UpdateWord)
		r.Delete("/{id}", h.DeleteWord)
	})
}

// CreateWord handles POST /admin/words
// @Summary Create a dictionary word
// @Description Create a new dictionary word. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.WordUpsertRequest true "Word to create"
// @Success 201 {object} models.VocabularyWord
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/words [post]
func (h *AdminWordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req models.WordUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.adminWordService.CreateWord(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create word", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, word)
}

// UpdateWord handles PUT /admin/words/{id}
// @Summary Update a dictionary word
// @Description Update an existing dictionary word. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Word ID"
// @Param request body models.WordUpsertRequest true "Word fields"
// @Success 200 {object} models.VocabularyWord
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Word not found"
// @Security BearerAuth
// @Router /admin/words/{id} [put]
func (h *AdminWordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || wordID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	var req models.WordUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.adminWordService.UpdateWord(r.Context(), wordID, &req)
	if err != nil {
		h.logger.Error("failed to update word", zap.Error(err), zap.Int("word_id", wordID))
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, word)
}

// DeleteWord handles DELETE /admin/words/{id}
// @Summary Delete a dictionary word
// @Description Delete a dictionary word. Requires admin role.
// @Tags admin
// @Produce json
// @Param id path int true "Word ID"
// @Success 200 {object} map[string]string "Word deleted"
// @Failure 400 {object} map[string]string "Invalid word ID"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Word not found"
// @Security BearerAuth
// @Router /admin/words/{id} [delete]
func (h *AdminWordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || wordID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	if err := h.adminWordService.DeleteWord(r.Context(), wordID); err != nil {
		h.logger.Error("failed to delete word", zap.Error(err), zap.Int("word_id", wordID))
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "word deleted successfully"})
}
