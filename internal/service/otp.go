package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// OTPLedger issues and checks short numeric codes.
type OTPLedger struct {
	store   model.OTPStore
	limiter model.OTPLimiter
	ttls    map[model.OTPPurpose]time.Duration
	random  io.Reader
	now     func() time.Time
	logger  *logger.Logger
}

// NewOTPLedger creates a ledger. limiter may be nil. Zero TTLs fall back to
// model.TwoFactorOTPTTL and model.EmailVerificationOTPTTL.
func NewOTPLedger(store model.OTPStore, limiter model.OTPLimiter, twoFactorTTL, emailTTL time.Duration, logger *logger.Logger) *OTPLedger {
	if twoFactorTTL <= 0 {
		twoFactorTTL = model.TwoFactorOTPTTL
	}
	if emailTTL <= 0 {
		emailTTL = model.EmailVerificationOTPTTL
	}
	return &OTPLedger{
		store:   store,
		limiter: limiter,
		ttls: map[model.OTPPurpose]time.Duration{
			model.OTPPurposeTwoFactor:         twoFactorTTL,
			model.OTPPurposeEmailVerification: emailTTL,
		},
		random: rand.Reader,
		now:    time.Now,
		logger: logger,
	}
}

// TTL returns the lifetime of codes issued for purpose.
func (l *OTPLedger) TTL(purpose model.OTPPurpose) time.Duration {
	return l.ttls[purpose]
}

// Issue generates a new code and replaces any earlier one of the same purpose.
func (l *OTPLedger) Issue(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose) (string, error) {
	if !purpose.Valid() {
		return "", fmt.Errorf("unknown otp purpose %q", purpose)
	}

	if l.limiter != nil {
		if err := l.limiter.Allow(ctx, userID, purpose); err != nil {
			l.logger.Info("OTP service: issuance throttled", "user_id", userID, "purpose", purpose)
			return "", err
		}
	}

	code, err := generateCode(l.random, model.OTPLength)
	if err != nil {
		return "", err
	}

	now := l.now()
	err = l.store.Replace(ctx, model.OTP{
		ID:        uuid.New(),
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(l.ttls[purpose]),
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	l.logger.Debug("OTP service: code issued", "user_id", userID, "purpose", purpose)

	return code, nil
}

// Verify checks candidate against the latest live code without consuming it.
func (l *OTPLedger) Verify(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose, candidate string) (bool, error) {
	otp, err := l.store.GetLatestLive(ctx, userID, purpose, l.now())
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get otp: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(otp.Code), []byte(candidate)) == 1, nil
}

// Consume deletes every code of purpose for the user. It is idempotent.
func (l *OTPLedger) Consume(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose) error {
	if err := l.store.DeleteAll(ctx, userID, purpose); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	return nil
}

// VerifyAndConsume succeeds at most once per issued code, even under
// concurrent attempts.
func (l *OTPLedger) VerifyAndConsume(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose, candidate string) (bool, error) {
	if len(candidate) != model.OTPLength {
		return false, nil
	}
	ok, err := l.store.ConsumeMatching(ctx, userID, purpose, candidate, l.now())
	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}
	if ok && l.limiter != nil {
		if err := l.limiter.Reset(ctx, userID, purpose); err != nil {
			l.logger.Warn("OTP service: failed to reset issuance limiter", "user_id", userID, "purpose", purpose, "error", err.Error())
		}
	}
	return ok, nil
}

// generateCode returns a uniformly random zero-padded decimal string.
func generateCode(r io.Reader, length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(r, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
