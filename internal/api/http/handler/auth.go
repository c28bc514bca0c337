package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

const (
	codeSentMessage  = "if the account exists, a code has been sent"
	resetSentMessage = "if the account exists, a reset link has been sent"
)

// Auth serves signup, login, code verification and password recovery.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, contextManager: contextManager, logger: logger}
}

// SignUp handles POST /api/auth/signup.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	user, profile, err := h.authService.SignUp(r.Context(), req.params())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, signupResponse{
		ID:      user.ID,
		Email:   user.Email,
		Profile: newProfileResponse(profile),
	})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if result.OTPRequired {
		respond.JSON(w, http.StatusOK, otpRequiredResponse{UserID: result.UserID, OTPRequired: true})
		return
	}
	respond.JSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}

// VerifyTwoFactor handles POST /api/auth/otp/verify.
func (h *Auth) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	userID, err := otpUserID(req.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	token, err := h.authService.VerifyTwoFactor(r.Context(), userID, req.OTP)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

// ResendTwoFactor handles POST /api/auth/otp/resend.
func (h *Auth) ResendTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	userID, err := parseUserID("userId", req.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ResendTwoFactor(r.Context(), userID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, messageResponse{Message: codeSentMessage})
}

// VerifyEmail handles POST /api/auth/email/verify.
func (h *Auth) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	userID, err := otpUserID(req.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	token, err := h.authService.VerifyEmail(r.Context(), userID, req.OTP)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

// ResendEmailVerification handles POST /api/auth/email/resend.
func (h *Auth) ResendEmailVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ResendEmailVerification(r.Context(), req.Email); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, messageResponse{Message: codeSentMessage})
}

// ForgotPassword handles POST /api/auth/password/forgot.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, messageResponse{Message: resetSentMessage})
}

// ValidateResetToken handles POST /api/auth/password/validate.
func (h *Auth) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ValidateResetToken(r.Context(), req.Token); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "token is valid"})
}

// ResetPassword handles POST /api/auth/password/reset.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, messageResponse{Message: "password has been reset"})
}

// ChangePassword handles POST /api/me/password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// otpUserID parses the user id of a code submission. An unusable id fails
// the same way as a wrong code.
func otpUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierrors.NewErrInvalidOrExpiredOTP()
	}
	return id, nil
}
