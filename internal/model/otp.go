package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OTPPurpose separates one-time codes by flow.
type OTPPurpose string

const (
	// OTPPurposeTwoFactor is the second login step.
	OTPPurposeTwoFactor OTPPurpose = "two_factor"
	// OTPPurposeEmailVerification proves ownership of the signup address.
	OTPPurposeEmailVerification OTPPurpose = "email_verification"
)

const (
	// TwoFactorOTPTTL is the default lifetime of a login code.
	TwoFactorOTPTTL = 10 * time.Minute
	// EmailVerificationOTPTTL is the default lifetime of a verification code.
	EmailVerificationOTPTTL = 30 * time.Minute
	// OTPLength is the number of digits in a code.
	OTPLength = 6
)

// Valid reports whether p is a known purpose.
func (p OTPPurpose) Valid() bool {
	return p == OTPPurposeTwoFactor || p == OTPPurposeEmailVerification
}

// OTPStore persists one-time codes. At most one record per user and purpose
// is live; Replace removes older ones in the same transaction.
type OTPStore interface {
	Replace(ctx context.Context, otp OTP) error
	GetLatestLive(ctx context.Context, userID uuid.UUID, purpose OTPPurpose, now time.Time) (OTP, error)
	ConsumeMatching(ctx context.Context, userID uuid.UUID, purpose OTPPurpose, code string, now time.Time) (bool, error)
	DeleteAll(ctx context.Context, userID uuid.UUID, purpose OTPPurpose) error
}

// OTP is a stored one-time code.
type OTP struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Purpose   OTPPurpose
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// OTPLimiter guards code issuance against flooding.
type OTPLimiter interface {
	Allow(ctx context.Context, userID uuid.UUID, purpose OTPPurpose) error
	Reset(ctx context.Context, userID uuid.UUID, purpose OTPPurpose) error
}
