package contracts

import (
	"context"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	CreateUser(ctx context.Context, userEntity *models.User) (userID string, err error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, updateData map[string]interface{}) error
	AddEnrolledCourse(ctx context.Context, userID, courseID string) error
	RemoveEnrolledCourse(ctx context.Context, userID, courseID string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error)
}
