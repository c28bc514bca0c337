package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Credentials owns user identity, password material and role assignment.
type Credentials struct {
	userStore    model.UserStore
	profileStore model.ProfileStore
	roleStore    model.RoleStore
	hasher       *PasswordHasher
	defaultRole  string
	logger       *logger.Logger
}

func NewCredentials(
	userStore model.UserStore,
	profileStore model.ProfileStore,
	roleStore model.RoleStore,
	hasher *PasswordHasher,
	defaultRole string,
	logger *logger.Logger,
) *Credentials {
	return &Credentials{
		userStore:    userStore,
		profileStore: profileStore,
		roleStore:    roleStore,
		hasher:       hasher,
		defaultRole:  defaultRole,
		logger:       logger,
	}
}

// FindByEmail returns model.ErrNotFound when no active account uses email.
func (c *Credentials) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return c.userStore.GetByEmail(ctx, normalizeEmail(email))
}

// FindByID returns model.ErrNotFound when the account does not exist.
func (c *Credentials) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return c.userStore.GetByID(ctx, id)
}

// CreateUser registers an account with the default role. Uniqueness of email,
// phone and ID number is checked before anything is written.
func (c *Credentials) CreateUser(ctx context.Context, email, passwordHash string, profile model.Profile) (model.User, model.Profile, error) {
	email = normalizeEmail(email)

	c.logger.Debug("Credentials service: creating user", "email", email)

	_, err := c.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		c.logger.Info("Credentials service: email already registered", "email", email)
		return model.User{}, model.Profile{}, apierrors.NewErrEmailIsTaken(email)
	case !errors.Is(err, model.ErrNotFound):
		return model.User{}, model.Profile{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	phoneTaken, err := c.profileStore.ExistsByPhone(ctx, profile.Phone)
	if err != nil {
		return model.User{}, model.Profile{}, fmt.Errorf("failed to check phone: %w", err)
	}
	if phoneTaken {
		return model.User{}, model.Profile{}, apierrors.NewErrPhoneIsTaken()
	}

	idTaken, err := c.profileStore.ExistsByIDNumber(ctx, profile.IDNumber)
	if err != nil {
		return model.User{}, model.Profile{}, fmt.Errorf("failed to check id number: %w", err)
	}
	if idTaken {
		return model.User{}, model.Profile{}, apierrors.NewErrIDNumberIsTaken()
	}

	role, err := c.roleStore.GetByName(ctx, c.defaultRole)
	if errors.Is(err, model.ErrNotFound) {
		c.logger.Error("Credentials service: default role is missing", "role", c.defaultRole)
		return model.User{}, model.Profile{}, apierrors.NewErrConfig(fmt.Sprintf("default role %q is not seeded", c.defaultRole))
	}
	if err != nil {
		return model.User{}, model.Profile{}, fmt.Errorf("failed to resolve default role: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:               uuid.New(),
		Email:            email,
		PasswordHash:     &passwordHash,
		RoleID:           role.ID,
		TwoFactorEnabled: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	savedUser, savedProfile, err := c.userStore.Create(ctx, user, profile)
	if errors.Is(err, model.ErrConflict) {
		// Lost a race with a concurrent signup.
		return model.User{}, model.Profile{}, apierrors.NewErrConflict("account details are already registered")
	}
	if err != nil {
		c.logger.Error("Credentials service: failed to create user", "email", email, "error", err.Error())
		return model.User{}, model.Profile{}, fmt.Errorf("failed to create user: %w", err)
	}

	c.logger.Info("Credentials service: user created", "user_id", savedUser.ID, "role", role.Name)

	return savedUser, savedProfile, nil
}

// UpdatePassword overwrites the stored hash. The caller authorizes the change.
func (c *Credentials) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if err := c.userStore.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// MarkVerified records that the user proved ownership of their email.
func (c *Credentials) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	if err := c.userStore.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// HashPassword hashes a plaintext password.
func (c *Credentials) HashPassword(password string) (string, error) {
	return c.hasher.Hash(password)
}

// VerifyPassword compares candidate against storedHash.
func (c *Credentials) VerifyPassword(candidate, storedHash string) bool {
	return c.hasher.Verify(candidate, storedHash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
