package googleauth

import (
	"context"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/pkg/exceptions"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

type googleVerifier struct {
	ClientID string
}

func NewGoogleVerifier(clientID string) contracts.GoogleTokenVerifier {
	return &googleVerifier{ClientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, idToken string) (*contracts.GoogleClaims, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	err := verifier.VerifyIDToken(idToken, []string{g.ClientID})
	if err != nil {
		return nil, exceptions.ErrGoogleTokenInvalid(err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, exceptions.ErrGoogleTokenInvalid(err)
	}

	return &contracts.GoogleClaims{
		Subject: claimSet.Sub,
		Email:   claimSet.Email,
		Name:    claimSet.Name,
	}, nil
}
