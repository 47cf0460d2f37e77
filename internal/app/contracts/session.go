package contracts

import (
	"context"
	"learnhub-service/internal/app/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, userID, role string) (sessionID string, err error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
