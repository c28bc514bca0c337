// Package handler implements the HTTP JSON endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

const maxBodyBytes = 1 << 20

// AuthService covers signup, login and credential recovery.
type AuthService interface {
	SignUp(ctx context.Context, params model.SignupParams) (model.User, model.Profile, error)
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	VerifyTwoFactor(ctx context.Context, userID uuid.UUID, code string) (string, error)
	ResendTwoFactor(ctx context.Context, userID uuid.UUID) error
	VerifyEmail(ctx context.Context, userID uuid.UUID, code string) (string, error)
	ResendEmailVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, rawToken string) error
	ResetPassword(ctx context.Context, rawToken, password string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

// MemberService covers the signed-in member's account.
type MemberService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.Member, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error)
	SetTwoFactor(ctx context.Context, userID uuid.UUID, enabled bool) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, r io.Reader, size int64, contentType string) (string, error)
	Avatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, string, error)
}

// RoleService covers role administration.
type RoleService interface {
	List(ctx context.Context) ([]model.Role, error)
	UpdatePermissions(ctx context.Context, roleID int64, permissions model.Permissions) (model.Role, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
}

// PushService covers web push subscriptions.
type PushService interface {
	Subscribe(ctx context.Context, userID uuid.UUID, endpoint, p256dh, auth string) (model.PushSubscription, error)
	Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) error
	List(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error)
}

func handleError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	respond.Error(w, r, log, err)
}

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierrors.NewErrBadRequest("request body is too large")
		}
		return apierrors.NewErrBadRequest("request body is not valid JSON")
	}
	if dec.More() {
		return apierrors.NewErrBadRequest("request body must contain a single JSON object")
	}
	return nil
}

func parseUserID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierrors.NewErrValidation(map[string]string{field: "must be a valid id"})
	}
	return id, nil
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	return parseUserID("id", chi.URLParam(r, "id"))
}

func roleIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.NewErrValidation(map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}

// currentIdentity returns the identity placed in context by the
// authentication middleware.
func currentIdentity(cm model.ContextManager, r *http.Request) (model.Identity, error) {
	identity, ok := cm.GetIdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, apierrors.NewErrMissingAuthorizationToken()
	}
	return identity, nil
}
