package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

const resetTokenBytes = 32

// ResetLedger manages single-use password reset tickets. Only a SHA-256
// digest of each raw token is stored.
type ResetLedger struct {
	store  model.ResetTicketStore
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

func NewResetLedger(store model.ResetTicketStore, ttl time.Duration, logger *logger.Logger) *ResetLedger {
	if ttl <= 0 {
		ttl = model.ResetTicketTTL
	}
	return &ResetLedger{store: store, ttl: ttl, now: time.Now, logger: logger}
}

// NewRawToken returns a random URL-safe token to hand to the user once.
func NewRawToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Issue stores the digest of rawToken for the user, replacing older tickets.
func (l *ResetLedger) Issue(ctx context.Context, userID uuid.UUID, rawToken string) error {
	now := l.now()
	err := l.store.Replace(ctx, model.ResetTicket{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: now.Add(l.ttl),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to persist reset ticket: %w", err)
	}
	l.logger.Debug("Reset service: ticket issued", "user_id", userID)
	return nil
}

// Verify returns the live ticket for rawToken. Unknown and expired tokens
// yield the same error.
func (l *ResetLedger) Verify(ctx context.Context, rawToken string) (model.ResetTicket, error) {
	if rawToken == "" {
		return model.ResetTicket{}, apierrors.NewErrInvalidOrExpiredResetToken()
	}
	ticket, err := l.store.GetLiveByHash(ctx, hashToken(rawToken), l.now())
	if errors.Is(err, model.ErrNotFound) {
		return model.ResetTicket{}, apierrors.NewErrInvalidOrExpiredResetToken()
	}
	if err != nil {
		return model.ResetTicket{}, fmt.Errorf("failed to get reset ticket: %w", err)
	}
	return ticket, nil
}

// Consume deletes a ticket.
func (l *ResetLedger) Consume(ctx context.Context, ticketID uuid.UUID) error {
	if err := l.store.Delete(ctx, ticketID); err != nil {
		return fmt.Errorf("failed to consume reset ticket: %w", err)
	}
	return nil
}

// Redeem consumes the ticket for rawToken and stores passwordHash for its
// user atomically. It returns the user the password was changed for.
func (l *ResetLedger) Redeem(ctx context.Context, rawToken, passwordHash string) (uuid.UUID, error) {
	userID, err := l.store.Redeem(ctx, hashToken(rawToken), l.now(), passwordHash)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, apierrors.NewErrInvalidOrExpiredResetToken()
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to redeem reset ticket: %w", err)
	}
	return userID, nil
}

func hashToken(raw string) []byte {
	h := sha256.Sum256([]byte(raw))
	return h[:]
}
