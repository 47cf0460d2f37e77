package contracts

import (
	"context"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) error
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	VerifyOTP(ctx context.Context, request *requests.VerifyOTP) error
	ResendOTP(ctx context.Context, request *requests.ResendOTP) error
	GoogleSignIn(ctx context.Context, request *requests.GoogleSignIn) (*responses.LoginResponse, error)
}

// GoogleTokenVerifier validates a Google ID token and extracts the claims the
// auth flow needs.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}
