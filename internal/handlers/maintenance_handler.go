package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TokenCleaningService is the interface that wraps the expired token sweep.
type TokenCleaningService interface {
	// Method CleanExpired deletes refresh tokens that can no longer be used and returns the deleted row count.
	CleanExpired(ctx context.Context) (int64, error)
}

// MaintenanceHandler handles internal maintenance HTTP requests.
// Its routes are protected by the X-API-Key middleware, not user auth.
type MaintenanceHandler struct {
	BaseHandler
	tokenCleaner TokenCleaningService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(tokenCleaner TokenCleaningService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		BaseHandler:  BaseHandler{logger: logger},
		tokenCleaner: tokenCleaner,
	}
}

// RegisterRoutes registers all maintenance handler routes
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/maintenance/clean-tokens", h.CleanTokens)
}

// CleanTokens handles POST /maintenance/clean-tokens
// @Summary Delete expired refresh tokens
// @Description Delete refresh tokens older than the refresh expiry. Protected by the X-API-Key header.
// @Tags maintenance
// @Produce json
// @Success 200 {object} map[string]int64 "Number of deleted tokens"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Security ApiKeyAuth
// @Router /maintenance/clean-tokens [post]
func (h *MaintenanceHandler) CleanTokens(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.tokenCleaner.CleanExpired(r.Context())
	if err != nil {
		h.logger.Error("failed to clean expired tokens", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
