package middlewares

import (
	"context"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (s *fakeSessionService) CreateSession(ctx context.Context, userID, role string) (string, error) {
	return "", nil
}

func (s *fakeSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionData, ok := s.sessions[sessionID]
	if !ok {
		return nil, exceptions.ErrSessionInvalid(nil)
	}
	return sessionData, nil
}

func (s *fakeSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newMiddlewaresForTest(sessions map[string]*models.Session) *Middlewares {
	return &Middlewares{
		Log:            zap.NewNop(),
		SessionService: &fakeSessionService{sessions: sessions},
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
		},
	}
}

func TestAuthenticate(t *testing.T) {
	sessionData := &models.Session{
		SessionID: "session-1",
		UserID:    "user-1",
		Role:      constvars.RoleStudent,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	middlewares := newMiddlewaresForTest(map[string]*models.Session{"session-1": sessionData})

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		assert.True(t, ok, "session data should be attached to the context")
		assert.Equal(t, "user-1", fromContext.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-1", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Basic dXNlcjpwYXNz")

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token for an evicted session", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-gone", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-1", "attacker-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/users/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	middlewares := newMiddlewaresForTest(nil)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	requestWithRole := func(role string) *http.Request {
		req := httptest.NewRequest("GET", "/api/v1/payments/admin", nil)
		sessionData := &models.Session{SessionID: "session-1", UserID: "user-1", Role: role}
		ctx := context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionData)
		return req.WithContext(ctx)
	}

	t.Run("admin passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middlewares.RequireAdmin(nextHandler).ServeHTTP(rr, requestWithRole(constvars.RoleAdmin))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("student is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middlewares.RequireAdmin(nextHandler).ServeHTTP(rr, requestWithRole(constvars.RoleStudent))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no session in context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/payments/admin", nil)
		rr := httptest.NewRecorder()
		middlewares.RequireAdmin(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
