package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/langplug/backend/internal/auth"
	"github.com/langplug/backend/internal/models"
	"github.com/langplug/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockGameService struct {
	session *models.GameSession
	detail  *models.SessionDetail
	err     error
}

func (m *mockGameService) StartSession(ctx context.Context, userID, episodeID int) (*models.GameSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockGameService) GetSession(ctx context.Context, userID, sessionID int) (*models.SessionDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func (m *mockGameService) Answer(ctx context.Context, userID, sessionID int, req *models.AnswerRequest) error {
	return m.err
}

func (m *mockGameService) Advance(ctx context.Context, userID, sessionID int) (*models.GameSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// setupGameRouter mounts the game handler the way the API server does,
// with the authenticated user injected into the request context
func setupGameRouter(svc GameService, userID int) chi.Router {
	handler := NewGameHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
			})
		})
		handler.RegisterRoutes(r)
	})
	return r
}

func TestGameHandler_Routes(t *testing.T) {
	session := &models.GameSession{ID: 3, UserID: 1, EpisodeID: 7, SegmentIndex: 0}
	detail := &models.SessionDetail{
		GameSession: *session,
		Progress:    map[int]models.SessionProgress{},
	}
	router := setupGameRouter(&mockGameService{session: session, detail: detail}, 1)

	t.Run("start session under game prefix", func(t *testing.T) {
		body, err := json.Marshal(models.StartSessionRequest{EpisodeID: 7})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/game/sessions", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var got models.GameSession
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, 3, got.ID)
		assert.Equal(t, 7, got.EpisodeID)
	})

	t.Run("get session under game prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/sessions/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("answer under game prefix", func(t *testing.T) {
		body, err := json.Marshal(models.AnswerRequest{WordID: 5, Correct: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/game/sessions/3/answer", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("advance under game prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/game/sessions/3/advance", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bare sessions path is gone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGameHandler_Errors(t *testing.T) {
	t.Run("blocked advance returns 409", func(t *testing.T) {
		router := setupGameRouter(&mockGameService{err: services.ErrSegmentBlocked}, 1)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/game/sessions/3/advance", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("foreign session returns 403", func(t *testing.T) {
		router := setupGameRouter(&mockGameService{err: services.ErrNotSessionOwner}, 1)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/game/sessions/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
