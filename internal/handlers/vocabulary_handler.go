package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// VocabularyService is the interface that wraps methods for vocabulary business logic.
type VocabularyService interface {
	// Method ListWords retrieves dictionary words with an optional CEFR level filter and pagination.
	ListWords(ctx context.Context, level models.CEFRLevel, limit, offset int) ([]models.VocabularyWord, error)
	// Method GetKnownWords retrieves the words the user marked as known.
	GetKnownWords(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// Method MarkWords marks the given words known or unknown for the user.
	//
	// If any word ID does not exist the whole batch is rejected and the error will be returned.
	MarkWords(ctx context.Context, userID int, wordIDs []int, known bool) error
	// Method GetBlockingWords retrieves words in a segment above the user's level and not marked known, ordered by occurrence count.
	GetBlockingWords(ctx context.Context, userID, episodeID, segmentIndex int) ([]models.BlockingWord, error)
	// Method GetStats returns known/total word counts per CEFR level for the user.
	GetStats(ctx context.Context, userID int) ([]models.LevelStats, error)
}

// VocabularyHandler handles vocabulary-related HTTP requests
type VocabularyHandler struct {
	BaseHandler
	vocabularyService VocabularyService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocabularyService VocabularyService, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		BaseHandler:       BaseHandler{logger: logger},
		vocabularyService: vocabularyService,
	}
}

// RegisterRoutes registers all vocabulary handler routes
func (h *VocabularyHandler) RegisterRoutes(r chi.Router) {
	r.Route("/vocabulary", func(r chi.Router) {
		r.Get("/words", h.ListWords)
		r.Get("/known", h.GetKnownWords)
		r.Post("/mark-known", h.MarkKnown)
		r.Post("/mark-unknown", h.MarkUnknown)
		r.Get("/blocking-words", h.GetBlockingWords)
		r.Get("/stats", h.GetStats)
	})
}

// ListWords handles GET /vocabulary/words
// @Summary List dictionary words
// @Description List dictionary words with an optional CEFR level filter and pagination.
// @Tags vocabulary
// @Produce json
// @Param level query string false "CEFR level filter (A1..C2)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.VocabularyWord
// @Failure 400 {object} map[string]string "Invalid level"
// @Security BearerAuth
// @Router /vocabulary/words [get]
func (h *VocabularyHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	level := models.CEFRLevel(r.URL.Query().Get("level"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	words, err := h.vocabularyService.ListWords(r.Context(), level, limit, offset)
	if err != nil {
		h.logger.Error("failed to list words", zap.Error(err))
		if strings.Contains(err.Error(), "invalid level") {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, words)
}

// GetKnownWords handles GET /vocabulary/known
// @Summary Get known words
// @Description Get the words the authenticated user has marked as known.
// @Tags vocabulary
// @Produce json
// @Success 200 {array} models.VocabularyWord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /vocabulary/known [get]
func (h *VocabularyHandler) GetKnownWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	words, err := h.vocabularyService.GetKnownWords(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get known words", zap.Error(err), zap.Int("user_id", userID))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, words)
}

// MarkKnown handles POST /vocabulary/mark-known
// @Summary Mark words as known
// @Description Mark a batch of words as known for the authenticated user.
// @Tags vocabulary
// @Accept json
// @Produce json
// @Param request body models.MarkWordsRequest true "Word IDs to mark"
// @Success 200 {object} map[string]string "Words marked"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /vocabulary/mark-known [post]
func (h *VocabularyHandler) MarkKnown(w http.ResponseWriter, r *http.Request) {
	h.markWords(w, r, true)
}

// MarkUnknown handles POST /vocabulary/mark-unknown
// @Summary Mark words as unknown
// @Description Mark a batch of words as unknown for the authenticated user.
// @Tags vocabulary
// @Accept json
// @Produce json
// @Param request body models.MarkWordsRequest true "Word IDs to mark"
// @Success 200 {object} map[string]string "Words marked"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /vocabulary/mark-unknown [post]
func (h *VocabularyHandler) MarkUnknown(w http.ResponseWriter, r *http.Request) {
	h.markWords(w, r, false)
}

// markWords decodes a mark request and applies it with the given known flag
func (h *VocabularyHandler) markWords(w http.ResponseWriter, r *http.Request, known bool) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.MarkWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.vocabularyService.MarkWords(r.Context(), userID, req.WordIDs, known); err != nil {
		h.logger.Error("failed to mark words", zap.Error(err), zap.Int("user_id", userID))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "words marked successfully"})
}

// GetBlockingWords handles GET /vocabulary/blocking-words
// @Summary Get blocking words for a segment
// @Description Get words in a video segment that are above the user's level and not marked known, ordered by occurrence count.
// @Tags vocabulary
// @Produce json
// @Param episode_id query int true "Episode ID"
// @Param segment query int true "Segment index"
// @Success 200 {array} models.BlockingWord
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Episode or segment not found"
// @Security BearerAuth
// @Router /vocabulary/blocking-words [get]
func (h *VocabularyHandler) GetBlockingWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	episodeID, err := strconv.Atoi(r.URL.Query().Get("episode_id"))
	if err != nil || episodeID <= 0 {
		h.respondError(w, http.StatusBadRequest, "episode_id is required")
		return
	}

	segmentIndex, err := strconv.Atoi(r.URL.Query().Get("segment"))
	if err != nil || segmentIndex < 0 {
		h.respondError(w, http.StatusBadRequest, "segment is required")
		return
	}

	words, err := h.vocabularyService.GetBlockingWords(r.Context(), userID, episodeID, segmentIndex)
	if err != nil {
		h.logger.Error("failed to get blocking words",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("episode_id", episodeID),
		)
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, words)
}

// GetStats handles GET /vocabulary/stats
// @Summary Get vocabulary statistics
// @Description Get known/total word counts per CEFR level for the authenticated user.
// @Tags vocabulary
// @Produce json
// @Success 200 {array} models.LevelStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /vocabulary/stats [get]
func (h *VocabularyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.vocabularyService.GetStats(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get vocabulary stats", zap.Error(err), zap.Int("user_id", userID))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
