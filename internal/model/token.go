package model

import "github.com/google/uuid"

// TokenManager signs and validates session tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	ParseAccessToken(token string) (Identity, error)
}

// Identity is the subject carried by a session token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// LoginResult is either a session token or a pending second factor.
type LoginResult struct {
	Token       string
	UserID      uuid.UUID
	OTPRequired bool
}
