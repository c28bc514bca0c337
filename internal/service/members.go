package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Members serves the signed-in user's profile.
type Members struct {
	userStore    model.UserStore
	profileStore model.ProfileStore
	roleStore    model.RoleStore
	storage      model.Storage
	logger       *logger.Logger
}

// NewMembers creates the service. storage may be nil, which disables avatars.
func NewMembers(userStore model.UserStore, profileStore model.ProfileStore, roleStore model.RoleStore, storage model.Storage, logger *logger.Logger) *Members {
	return &Members{
		userStore:    userStore,
		profileStore: profileStore,
		roleStore:    roleStore,
		storage:      storage,
		logger:       logger,
	}
}

func (m *Members) Get(ctx context.Context, userID uuid.UUID) (model.Member, error) {
	user, err := m.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Member{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := m.profileStore.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Member{}, fmt.Errorf("failed to get profile: %w", err)
	}

	role, err := m.roleStore.GetByID(ctx, user.RoleID)
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to get role: %w", err)
	}

	return model.Member{User: user, Profile: profile, Role: role.Name, Permissions: role.Permissions}, nil
}

func (m *Members) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	f := fieldErrors{}
	for field, value := range map[string]*string{
		"firstName": update.FirstName,
		"lastName":  update.LastName,
		"county":    update.County,
	} {
		if value != nil {
			f.require(field, *value)
		}
	}
	if err := f.err(); err != nil {
		return model.Profile{}, err
	}

	current, err := m.profileStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, apierrors.NewErrNotFound("profile")
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	saved, err := m.profileStore.Update(ctx, update.Apply(current))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	m.logger.Info("Members service: profile updated", "user_id", userID)

	return saved, nil
}

// SetTwoFactor turns the login code step on or off.
func (m *Members) SetTwoFactor(ctx context.Context, userID uuid.UUID, enabled bool) error {
	err := m.userStore.SetTwoFactor(ctx, userID, enabled)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to set two factor: %w", err)
	}
	m.logger.Info("Members service: two factor changed", "user_id", userID, "enabled", enabled)
	return nil
}

// UploadAvatar stores a new profile picture and removes the previous one.
func (m *Members) UploadAvatar(ctx context.Context, userID uuid.UUID, r io.Reader, size int64, contentType string) (string, error) {
	if m.storage == nil {
		return "", apierrors.NewErrConfig("object storage is not configured")
	}

	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", apierrors.NewErrValidation(map[string]string{"avatar": "must be a JPEG, PNG or WebP image"})
	}

	profile, err := m.profileStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierrors.NewErrNotFound("profile")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)
	if err := m.storage.Upload(ctx, key, r, size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := m.profileStore.SetAvatarKey(ctx, userID, key); err != nil {
		_ = m.storage.Delete(ctx, key)
		return "", fmt.Errorf("failed to save avatar key: %w", err)
	}

	if profile.AvatarKey != "" {
		if err := m.storage.Delete(ctx, profile.AvatarKey); err != nil {
			m.logger.Warn("Members service: failed to delete old avatar", "key", profile.AvatarKey, "error", err.Error())
		}
	}

	m.logger.Info("Members service: avatar uploaded", "user_id", userID, "key", key)

	return key, nil
}

// Avatar opens the stored profile picture of the user.
func (m *Members) Avatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, string, error) {
	if m.storage == nil {
		return nil, "", apierrors.NewErrConfig("object storage is not configured")
	}

	profile, err := m.profileStore.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to get profile: %w", err)
	}
	if profile.AvatarKey == "" {
		return nil, "", apierrors.NewErrNotFound("avatar")
	}

	rc, err := m.storage.Download(ctx, profile.AvatarKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download avatar: %w", err)
	}
	return rc, contentTypeFor(profile.AvatarKey), nil
}

func contentTypeFor(key string) string {
	for ct, ext := range avatarExtensions {
		if strings.HasSuffix(key, "."+ext) {
			return ct
		}
	}
	return "application/octet-stream"
}
