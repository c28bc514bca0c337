package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// TokenService turns verified identities into session tokens and back.
// Tokens are not persisted; they end by expiry or client-side discard.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue signs a token binding the user's ID and email.
func (s *TokenService) Issue(_ context.Context, userID uuid.UUID, email string) (string, error) {
	token, err := s.manager.GenerateAccessToken(userID, email)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}
	return token, nil
}

// Decode validates token. Every failure is reported as the same
// unauthorized error; the cause is only logged.
func (s *TokenService) Decode(_ context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, apierrors.NewErrMissingAuthorizationToken()
	}
	identity, err := s.manager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("Token service: rejected token", "error", err.Error())
		return model.Identity{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	if identity.UserID == uuid.Nil {
		return model.Identity{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	return identity, nil
}
