package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/services"
	"go.uber.org/zap"
)

// GameService is the interface that wraps methods for game session business logic.
type GameService interface {
	// Method StartSession starts a session for an episode, or resumes the user's open one.
	//
	// If the episode is not ready for learning, or some other error occurs, the error will be returned together with "nil" value for the session.
	StartSession(ctx context.Context, userID, episodeID int) (*models.GameSession, error)
	// Method GetSession retrieves a session with its per-word progress map.
	//
	// If the session belongs to another user, services.ErrNotSessionOwner will be returned.
	GetSession(ctx context.Context, userID, sessionID int) (*models.SessionDetail, error)
	// Method Answer records a vocabulary answer within a session.
	Answer(ctx context.Context, userID, sessionID int, req *models.AnswerRequest) error
	// Method Advance moves a session to the next segment once all blocking words of the current segment are resolved.
	//
	// If unresolved blocking words remain, services.ErrSegmentBlocked will be returned together with "nil" value for the session.
	Advance(ctx context.Context, userID, sessionID int) (*models.GameSession, error)
}

// GameHandler handles game session HTTP requests
type GameHandler struct {
	BaseHandler
	gameService GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		BaseHandler: BaseHandler{logger: logger},
		gameService: gameService,
	}
}

// RegisterRoutes registers all game handler routes
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.StartSession)
			r.Get("/{id}", h.GetSession)
			r.Post("/{id}/answer", h.Answer)
			r.Post("/{id}/advance", h.Advance)
		})
	})
}

// StartSession handles POST /game/sessions
// @Summary Start or resume a game session
// @Description Start a learning session for an episode. If the user already has an open session for the episode, it is resumed instead.
// @Tags game
// @Accept json
// @Produce json
// @Param request body models.StartSessionRequest true "Episode to play"
// @Success 201 {object} models.GameSession
// @Failure 400 {object} map[string]string "Invalid request or episode not ready"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Episode not found"
// @Security BearerAuth
// @Router /game/sessions [post]
func (h *GameHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.EpisodeID <= 0 {
		h.respondError(w, http.StatusBadRequest, "episode_id is required")
		return
	}

	session, err := h.gameService.StartSession(r.Context(), userID, req.EpisodeID)
	if err != nil {
		h.logger.Error("failed to start session",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("episode_id", req.EpisodeID),
		)
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /game/sessions/{id}
// @Summary Get a game session
// @Description Get a session with its current segment index and per-word answer progress.
// @Tags game
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.SessionDetail
// @Failure 400 {object} map[string]string "Invalid session ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Session belongs to another user"
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /game/sessions/{id} [get]
func (h *GameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	detail, err := h.gameService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		h.respondSessionError(w, err, sessionID)
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}

// Answer handles POST /game/sessions/{id}/answer
// @Summary Record a vocabulary answer
// @Description Record whether the user answered a word correctly within a session. A later correct answer overrides an earlier wrong one.
// @Tags game
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body models.AnswerRequest true "Answer"
// @Success 200 {object} map[string]string "Answer recorded"
// @Failure 400 {object} map[string]string "Invalid request or completed session"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Session belongs to another user"
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /game/sessions/{id}/answer [post]
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.gameService.Answer(r.Context(), userID, sessionID, &req); err != nil {
		h.respondSessionError(w, err, sessionID)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "answer recorded"})
}

// Advance handles POST /game/sessions/{id}/advance
// @Summary Advance to the next segment
// @Description Advance the session to the next video segment. Fails with 409 while the current segment still has unresolved blocking words. Advancing past the last segment completes the session.
// @Tags game
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.GameSession
// @Failure 400 {object} map[string]string "Completed session"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Session belongs to another user"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Unresolved blocking words"
// @Security BearerAuth
// @Router /game/sessions/{id}/advance [post]
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	session, err := h.gameService.Advance(r.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSegmentBlocked) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondSessionError(w, err, sessionID)
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

// sessionRequest extracts the authenticated user and the session ID path param
func (h *GameHandler) sessionRequest(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return 0, 0, false
	}

	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || sessionID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid session id")
		return 0, 0, false
	}

	return userID, sessionID, true
}

// respondSessionError maps game service errors onto HTTP status codes
func (h *GameHandler) respondSessionError(w http.ResponseWriter, err error, sessionID int) {
	switch {
	case errors.Is(err, services.ErrNotSessionOwner):
		h.respondError(w, http.StatusForbidden, err.Error())
	case strings.Contains(err.Error(), "not found"):
		h.respondError(w, http.StatusNotFound, err.Error())
	case strings.Contains(err.Error(), "completed") || strings.Contains(err.Error(), "required"):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("game session request failed", zap.Error(err), zap.Int("session_id", sessionID))
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}
