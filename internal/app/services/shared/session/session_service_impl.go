package session

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	onceSessionService.Do(func() {
		instance := &sessionService{
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
		}
		sessionServiceInstance = instance
	})
	return sessionServiceInstance
}

func (svc *sessionService) CreateSession(ctx context.Context, userID, role string) (string, error) {
	sessionID := uuid.NewString()
	expiry := time.Duration(svc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour

	sessionData := &models.Session{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(expiry),
	}

	key := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	err := svc.RedisRepository.Set(ctx, key, sessionData, expiry)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	key := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	sessionData, err := svc.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrSessionInvalid(fmt.Errorf("session %s not found", sessionID))
	}

	sessionEntity := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), sessionEntity)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return sessionEntity, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	return svc.RedisRepository.Delete(ctx, key)
}
