package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/mail"
	"github.com/napowa/napowa-server/internal/model"
)

// Auth drives signup, login, verification and password recovery.
type Auth struct {
	credentials  *Credentials
	otps         *OTPLedger
	resets       *ResetLedger
	tokenService *TokenService
	mailer       model.Mailer
	publisher    model.EventPublisher
	resetLinkURL string
	logger       *logger.Logger
}

// NewAuth creates the auth service. mailer and publisher may be nil.
func NewAuth(
	credentials *Credentials,
	otps *OTPLedger,
	resets *ResetLedger,
	tokenService *TokenService,
	mailer model.Mailer,
	publisher model.EventPublisher,
	resetLinkURL string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		credentials:  credentials,
		otps:         otps,
		resets:       resets,
		tokenService: tokenService,
		mailer:       mailer,
		publisher:    publisher,
		resetLinkURL: resetLinkURL,
		logger:       logger,
	}
}

// SignUp validates the payload, creates the account and mails a
// verification code. A delivery failure does not undo the signup.
func (a *Auth) SignUp(ctx context.Context, params model.SignupParams) (model.User, model.Profile, error) {
	a.logger.Debug("Auth service: starting user registration", "email", params.Email)

	if err := validateSignup(params); err != nil {
		return model.User{}, model.Profile{}, err
	}

	hash, err := a.credentials.HashPassword(params.Password)
	if err != nil {
		return model.User{}, model.Profile{}, err
	}

	user, profile, err := a.credentials.CreateUser(ctx, params.Email, hash, model.Profile{
		FirstName:     strings.TrimSpace(params.FirstName),
		LastName:      strings.TrimSpace(params.LastName),
		Phone:         strings.TrimSpace(params.Phone),
		IDNumber:      strings.TrimSpace(params.IDNumber),
		County:        strings.TrimSpace(params.County),
		MemberType:    strings.TrimSpace(params.MemberType),
		Rank:          strings.TrimSpace(params.Rank),
		Station:       strings.TrimSpace(params.Station),
		ServiceNumber: strings.TrimSpace(params.ServiceNumber),
	})
	if err != nil {
		return model.User{}, model.Profile{}, err
	}

	if err := a.sendCode(ctx, user, model.OTPPurposeEmailVerification); err != nil {
		a.logger.Warn("Auth service: verification code not delivered",
			"user_id", user.ID,
			"error", err.Error())
	}

	notify(ctx, a.publisher, a.logger, model.SubjectUserRegistered, UserEvent{UserID: user.ID.String(), Email: user.Email})

	a.logger.Info("Auth service: user registration completed successfully", "user_id", user.ID)

	return user, profile, nil
}

// Login checks the password. Accounts with two-factor enabled get a code by
// mail instead of a token.
func (a *Auth) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	a.logger.Debug("Auth service: starting user login", "email", email)

	user, err := a.credentials.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		// Burn comparable time so unknown emails are not distinguishable.
		a.credentials.VerifyPassword(password, dummyHash)
		return model.LoginResult{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.HasPassword() || !a.credentials.VerifyPassword(password, *user.PasswordHash) {
		a.logger.Info("Auth service: invalid credentials", "user_id", user.ID)
		return model.LoginResult{}, apierrors.NewErrInvalidCredentials()
	}

	if !user.IsVerified {
		return model.LoginResult{}, apierrors.NewErrEmailNotVerified()
	}

	if user.TwoFactorEnabled {
		if err := a.sendCode(ctx, user, model.OTPPurposeTwoFactor); err != nil {
			return model.LoginResult{}, err
		}
		a.logger.Info("Auth service: second factor required", "user_id", user.ID)
		return model.LoginResult{UserID: user.ID, OTPRequired: true}, nil
	}

	token, err := a.tokenService.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully", "user_id", user.ID)

	return model.LoginResult{Token: token, UserID: user.ID}, nil
}

// VerifyTwoFactor exchanges a login code for a session token.
func (a *Auth) VerifyTwoFactor(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	user, err := a.consumeCode(ctx, userID, model.OTPPurposeTwoFactor, code)
	if err != nil {
		return "", err
	}

	token, err := a.tokenService.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: second factor verified", "user_id", user.ID)

	return token, nil
}

// ResendTwoFactor issues a fresh login code, invalidating the previous one.
func (a *Auth) ResendTwoFactor(ctx context.Context, userID uuid.UUID) error {
	user, err := a.credentials.FindByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !user.TwoFactorEnabled || !user.IsVerified {
		return nil
	}
	return a.sendCode(ctx, user, model.OTPPurposeTwoFactor)
}

// VerifyEmail marks the account verified and signs the user in.
func (a *Auth) VerifyEmail(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	user, err := a.consumeCode(ctx, userID, model.OTPPurposeEmailVerification, code)
	if err != nil {
		return "", err
	}

	if err := a.credentials.MarkVerified(ctx, user.ID); err != nil {
		return "", fmt.Errorf("failed to mark user verified: %w", err)
	}

	notify(ctx, a.publisher, a.logger, model.SubjectUserVerified, UserEvent{UserID: user.ID.String(), Email: user.Email})

	token, err := a.tokenService.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: email verified", "user_id", user.ID)

	return token, nil
}

// ResendEmailVerification mails a new verification code. Unknown and already
// verified addresses succeed silently.
func (a *Auth) ResendEmailVerification(ctx context.Context, email string) error {
	if a.mailer == nil {
		return apierrors.NewErrConfig("mail transport is not configured")
	}

	user, err := a.credentials.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.IsVerified {
		return nil
	}
	return a.sendCode(ctx, user, model.OTPPurposeEmailVerification)
}

// RequestPasswordReset mails a single-use reset link. Unknown addresses
// succeed silently.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	if a.mailer == nil {
		return apierrors.NewErrConfig("mail transport is not configured")
	}

	user, err := a.credentials.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Auth service: reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	raw, err := NewRawToken()
	if err != nil {
		return err
	}
	if err := a.resets.Issue(ctx, user.ID, raw); err != nil {
		return err
	}

	link, err := resetLink(a.resetLinkURL, raw)
	if err != nil {
		return apierrors.NewErrConfig(fmt.Sprintf("reset link url: %v", err))
	}
	subject, body, err := mail.ResetLink(link, a.resets.ttl)
	if err != nil {
		return err
	}
	if err := a.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	a.logger.Info("Auth service: password reset requested", "user_id", user.ID)

	return nil
}

// ValidateResetToken reports whether rawToken is still redeemable.
func (a *Auth) ValidateResetToken(ctx context.Context, rawToken string) error {
	_, err := a.resets.Verify(ctx, rawToken)
	return err
}

// ResetPassword sets a new password using a reset token. The ticket is
// consumed in the same transaction as the password write.
func (a *Auth) ResetPassword(ctx context.Context, rawToken, password string) error {
	if err := validateNewPassword("password", password); err != nil {
		return err
	}
	if _, err := a.resets.Verify(ctx, rawToken); err != nil {
		return err
	}

	hash, err := a.credentials.HashPassword(password)
	if err != nil {
		return err
	}

	userID, err := a.resets.Redeem(ctx, rawToken, hash)
	if err != nil {
		return err
	}

	notify(ctx, a.publisher, a.logger, model.SubjectPasswordReset, UserEvent{UserID: userID.String()})

	a.logger.Info("Auth service: password reset completed", "user_id", userID)

	return nil
}

// ChangePassword replaces the password of a signed-in user after checking
// the current one.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if err := validateNewPassword("newPassword", next); err != nil {
		return err
	}

	user, err := a.credentials.FindByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.HasPassword() && !a.credentials.VerifyPassword(current, *user.PasswordHash) {
		return apierrors.NewErrValidation(map[string]string{"currentPassword": "is incorrect"})
	}

	hash, err := a.credentials.HashPassword(next)
	if err != nil {
		return err
	}
	if err := a.credentials.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	a.logger.Info("Auth service: password changed", "user_id", user.ID)

	return nil
}

func (a *Auth) consumeCode(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose, code string) (model.User, error) {
	user, err := a.credentials.FindByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidOrExpiredOTP()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := a.otps.VerifyAndConsume(ctx, user.ID, purpose, strings.TrimSpace(code))
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		a.logger.Info("Auth service: code rejected", "user_id", user.ID, "purpose", purpose)
		return model.User{}, apierrors.NewErrInvalidOrExpiredOTP()
	}
	return user, nil
}

func (a *Auth) sendCode(ctx context.Context, user model.User, purpose model.OTPPurpose) error {
	if a.mailer == nil {
		return apierrors.NewErrConfig("mail transport is not configured")
	}

	code, err := a.otps.Issue(ctx, user.ID, purpose)
	if err != nil {
		return err
	}

	render := mail.VerificationCode
	if purpose == model.OTPPurposeTwoFactor {
		render = mail.LoginCode
	}
	subject, body, err := render(code, a.otps.TTL(purpose))
	if err != nil {
		return err
	}

	if err := a.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send %s code: %w", purpose, err)
	}
	return nil
}

func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// dummyHash is a valid bcrypt hash of a random string, compared against when
// the email is unknown.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX7hQp0.2ZpZ3Hk3Zr8s9zV0Q5e"
