package users

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	Log            *zap.Logger
}

func NewUserUsecase(userRepository contracts.UserRepository, logger *zap.Logger) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = &userUsecase{
			UserRepository: userRepository,
			Log:            logger,
		}
	})
	return userUsecaseInstance
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	userEntity, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userEntity == nil {
		return nil, exceptions.ErrUserNotExist(fmt.Errorf("user %s not found", userID))
	}

	return &responses.UserProfile{
		ID:              userEntity.ID,
		Name:            userEntity.Name,
		Email:           userEntity.Email,
		Role:            userEntity.Role,
		AccountStatus:   userEntity.AccountStatus,
		EnrolledCourses: userEntity.EnrolledCourses,
	}, nil
}
