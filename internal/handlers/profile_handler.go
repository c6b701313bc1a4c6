package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/models"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for user profile business logic.
type ProfileService interface {
	// Method GetProfile retrieves the user's profile.
	//
	// If such user does not exist or some other error occurs, the error will be returned together with "nil" value for the user.
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateProfile validates and updates the learner profile fields and returns the updated user.
	//
	// If the request contains an invalid level or language codes, or some other error occurs, the error will be returned together with "nil" value for the user.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error)
}

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    BaseHandler{logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
	})
}

// GetProfile handles GET /profile
// @Summary Get current user profile
// @Description Get the authenticated user's profile including learning languages and CEFR level.
// @Tags profile
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get profile", zap.Error(err), zap.Int("user_id", userID))
		if strings.Contains(err.Error(), "not found") {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /profile
// @Summary Update current user profile
// @Description Update the authenticated user's native language, target language and CEFR level.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.logger.Error("failed to update profile", zap.Error(err), zap.Int("user_id", userID))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
