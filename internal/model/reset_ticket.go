package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResetTicketTTL is the default lifetime of a password reset ticket.
const ResetTicketTTL = time.Hour

// ResetTicketStore persists password reset tickets by token digest.
type ResetTicketStore interface {
	Replace(ctx context.Context, ticket ResetTicket) error
	GetLiveByHash(ctx context.Context, tokenHash []byte, now time.Time) (ResetTicket, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Redeem deletes the live ticket matching tokenHash and stores the new
	// password hash for its user in one transaction.
	Redeem(ctx context.Context, tokenHash []byte, now time.Time, passwordHash string) (uuid.UUID, error)
}

// ResetTicket authorizes one password change. Only the digest of the raw
// token is kept.
type ResetTicket struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash []byte
	ExpiresAt time.Time
	CreatedAt time.Time
}
