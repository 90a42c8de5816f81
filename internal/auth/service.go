package auth

import (
	"github.com/financia-ai/financia/internal/identity"
)

// Service issues access tokens for authenticated users.
type Service struct {
	issuer *TokenIssuer
}

// NewService creates an auth service around a token issuer.
func NewService(issuer *TokenIssuer) *Service {
	return &Service{issuer: issuer}
}

// TokenResponse is the login payload returned to clients.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login issues a bearer token for an already authenticated user.
func (s *Service) Login(user identity.User) (TokenResponse, error) {
	token, _, err := s.issuer.Issue(user.ID)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
	}, nil
}
