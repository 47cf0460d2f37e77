package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, request *requests.RegisterUser) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LoginResponse), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthUsecase) VerifyOTP(ctx context.Context, request *requests.VerifyOTP) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAuthUsecase) ResendOTP(ctx context.Context, request *requests.ResendOTP) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAuthUsecase) GoogleSignIn(ctx context.Context, request *requests.GoogleSignIn) (*responses.LoginResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LoginResponse), args.Error(1)
}

type stubSessionService struct {
	session *models.Session
}

func (s *stubSessionService) CreateSession(ctx context.Context, userID, role string) (string, error) {
	return s.session.SessionID, nil
}

func (s *stubSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.session, nil
}

func (s *stubSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return nil
}

func TestAuthRouter(t *testing.T) {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}

	mockAuthUsecase := new(MockAuthUsecase)
	authController := controllers.NewAuthController(logger, mockAuthUsecase)

	sessionData := &models.Session{SessionID: "session-1", UserID: "user-1", Role: constvars.RoleStudent}
	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		SessionService: &stubSessionService{session: sessionData},
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	attachAuthRoutes(router, middlewareInstance, authController)

	t.Run("register with a valid body", func(t *testing.T) {
		mockAuthUsecase.On("Register", mock.Anything, mock.AnythingOfType("*requests.RegisterUser")).Return(nil)

		requestBody := requests.RegisterUser{
			Name:           "Test Student",
			Email:          "student@example.com",
			Password:       "password123",
			RetypePassword: "password123",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockAuthUsecase.AssertExpectations(t)
	})

	t.Run("register with mismatched passwords fails validation", func(t *testing.T) {
		requestBody := requests.RegisterUser{
			Name:           "Test Student",
			Email:          "student@example.com",
			Password:       "password123",
			RetypePassword: "different456",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("logout requires a bearer token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/logout", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockAuthUsecase.AssertNotCalled(t, "Logout")
	})

	t.Run("logout with a valid session", func(t *testing.T) {
		mockAuthUsecase.On("Logout", mock.Anything, "session-1").Return(nil)

		token, err := utils.GenerateSessionJWT("session-1", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/logout", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockAuthUsecase.AssertExpectations(t)
	})
}
