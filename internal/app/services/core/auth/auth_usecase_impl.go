package auth

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

type authUsecase struct {
	UserRepository  contracts.UserRepository
	RedisRepository contracts.RedisRepository
	SessionService  contracts.SessionService
	Mailer          contracts.MailerService
	GoogleVerifier  contracts.GoogleTokenVerifier
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	sessionService contracts.SessionService,
	mailerService contracts.MailerService,
	googleVerifier contracts.GoogleTokenVerifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			UserRepository:  userRepository,
			RedisRepository: redisRepository,
			SessionService:  sessionService,
			Mailer:          mailerService,
			GoogleVerifier:  googleVerifier,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", email))
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}

	userEntity := &models.User{
		Name:            request.Name,
		Email:           email,
		Password:        hashedPassword,
		Role:            constvars.RoleStudent,
		AccountStatus:   constvars.UserStatusPendingVerification,
		EnrolledCourses: []string{},
	}
	userEntity.SetCreatedAtUpdatedAt()

	_, err = uc.UserRepository.CreateUser(ctx, userEntity)
	if err != nil {
		return err
	}

	return uc.issueOTP(ctx, email)
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	userEntity, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if userEntity == nil || !utils.CheckPasswordHash(request.Password, userEntity.Password) {
		return nil, exceptions.ErrInvalidEmailOrPassword(fmt.Errorf("credentials rejected for %s", email))
	}
	if userEntity.AccountStatus != constvars.UserStatusActive {
		return nil, exceptions.ErrAccountNotVerified(fmt.Errorf("account status is %s", userEntity.AccountStatus))
	}

	return uc.issueSession(ctx, userEntity)
}

func (uc *authUsecase) Logout(ctx context.Context, sessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.SessionService.DeleteSession(ctx, sessionID)
}

func (uc *authUsecase) VerifyOTP(ctx context.Context, request *requests.VerifyOTP) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("authUsecase.VerifyOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	userEntity, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if userEntity == nil {
		return exceptions.ErrUserNotExist(fmt.Errorf("no user for email %s", email))
	}

	key := fmt.Sprintf(constvars.RedisKeyOTPFormat, email)
	storedOTP, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		return err
	}
	if storedOTP == "" {
		return exceptions.ErrOTPExpired(fmt.Errorf("no otp stored for %s", email))
	}
	// The repository stores JSON, so the stored value is quoted.
	if storedOTP != fmt.Sprintf("%q", request.OTP) {
		return exceptions.ErrOTPInvalid(fmt.Errorf("otp mismatch for %s", email))
	}

	err = uc.UserRepository.UpdateUser(ctx, userEntity.ID, map[string]interface{}{
		"accountStatus": constvars.UserStatusActive,
		"updatedAt":     time.Now(),
	})
	if err != nil {
		return err
	}

	return uc.RedisRepository.Delete(ctx, key)
}

func (uc *authUsecase) ResendOTP(ctx context.Context, request *requests.ResendOTP) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("authUsecase.ResendOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	userEntity, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if userEntity == nil {
		return exceptions.ErrUserNotExist(fmt.Errorf("no user for email %s", email))
	}

	return uc.issueOTP(ctx, email)
}

func (uc *authUsecase) GoogleSignIn(ctx context.Context, request *requests.GoogleSignIn) (*responses.LoginResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.GoogleSignIn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claims, err := uc.GoogleVerifier.Verify(ctx, request.IDToken)
	if err != nil {
		return nil, err
	}

	userEntity, err := uc.UserRepository.FindByGoogleID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if userEntity == nil {
		email := strings.ToLower(claims.Email)
		userEntity, err = uc.UserRepository.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if userEntity != nil {
			err = uc.UserRepository.UpdateUser(ctx, userEntity.ID, map[string]interface{}{
				"googleId":      claims.Subject,
				"accountStatus": constvars.UserStatusActive,
				"updatedAt":     time.Now(),
			})
			if err != nil {
				return nil, err
			}
			userEntity.GoogleID = claims.Subject
			userEntity.AccountStatus = constvars.UserStatusActive
		} else {
			// Google already verified the address, so the account starts active.
			userEntity = &models.User{
				Name:            claims.Name,
				Email:           email,
				GoogleID:        claims.Subject,
				Role:            constvars.RoleStudent,
				AccountStatus:   constvars.UserStatusActive,
				EnrolledCourses: []string{},
			}
			userEntity.SetCreatedAtUpdatedAt()
			userID, err := uc.UserRepository.CreateUser(ctx, userEntity)
			if err != nil {
				return nil, err
			}
			userEntity.ID = userID
		}
	}

	return uc.issueSession(ctx, userEntity)
}

func (uc *authUsecase) issueSession(ctx context.Context, userEntity *models.User) (*responses.LoginResponse, error) {
	sessionID, err := uc.SessionService.CreateSession(ctx, userEntity.ID, userEntity.Role)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(sessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, err
	}

	return &responses.LoginResponse{
		Token: token,
		User: &responses.UserProfile{
			ID:              userEntity.ID,
			Name:            userEntity.Name,
			Email:           userEntity.Email,
			Role:            userEntity.Role,
			AccountStatus:   userEntity.AccountStatus,
			EnrolledCourses: userEntity.EnrolledCourses,
		},
	}, nil
}

func (uc *authUsecase) issueOTP(ctx context.Context, email string) error {
	otp, err := utils.GenerateOTP(constvars.OTP_LENGTH)
	if err != nil {
		return exceptions.ErrCannotGenerateOTP(err)
	}

	expiry := time.Duration(uc.InternalConfig.App.OTPExpiredTimeInMinutes) * time.Minute
	key := fmt.Sprintf(constvars.RedisKeyOTPFormat, email)
	err = uc.RedisRepository.Set(ctx, key, otp, expiry)
	if err != nil {
		return err
	}

	payload := &requests.EmailPayload{
		Subject:  constvars.EmailOTPSubjectMessage,
		From:     uc.InternalConfig.Mailer.EmailSender,
		To:       []string{email},
		HTMLCode: fmt.Sprintf(constvars.EmailBodyOTPFormat, otp, uc.InternalConfig.App.OTPExpiredTimeInMinutes),
	}
	return uc.Mailer.SendEmail(ctx, payload)
}
