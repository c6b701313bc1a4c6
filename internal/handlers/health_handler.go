package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HealthHandler reports service health including its backing stores
type HealthHandler struct {
	BaseHandler
	db    *sql.DB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, redisClient *redis.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: BaseHandler{logger: logger},
		db:          db,
		redis:       redisClient,
	}
}

// RegisterRoutes registers the health check route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /health
// @Summary Health check
// @Description Report service health. Pings the database and Redis; returns 503 when either is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service healthy"
// @Failure 503 {object} map[string]string "A backing store is unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":   "ok",
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		status["database"] = "unreachable"
		healthy = false
	}

	if err := h.pingRedis(ctx); err != nil {
		h.logger.Error("redis health check failed", zap.Error(err))
		status["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		status["status"] = "degraded"
		h.respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	return h.redis.Ping(ctx).Err()
}
