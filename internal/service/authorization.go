package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Authorizer decides whether a user may perform an action on a resource.
type Authorizer struct {
	userStore model.UserStore
	roleStore model.RoleStore
	logger    *logger.Logger
}

func NewAuthorizer(userStore model.UserStore, roleStore model.RoleStore, logger *logger.Logger) *Authorizer {
	return &Authorizer{userStore: userStore, roleStore: roleStore, logger: logger}
}

// Permissions returns the grant mapping of a role.
func (a *Authorizer) Permissions(ctx context.Context, roleID int64) (model.Permissions, error) {
	role, err := a.roleStore.GetByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role %d: %w", roleID, err)
	}
	if role.Permissions == nil {
		return model.Permissions{}, nil
	}
	return role.Permissions, nil
}

// Can evaluates the user's role against resource and action.
func (a *Authorizer) Can(ctx context.Context, user model.User, resource, action string) (bool, error) {
	permissions, err := a.Permissions(ctx, user.RoleID)
	if err != nil {
		return false, err
	}
	allowed := permissions.Has(resource, action)
	if !allowed {
		a.logger.Info("Authorization: denied",
			"user_id", user.ID,
			"resource", resource,
			"action", action)
	}
	return allowed, nil
}

// CanUser loads the user and calls Can.
func (a *Authorizer) CanUser(ctx context.Context, userID uuid.UUID, resource, action string) (bool, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	return a.Can(ctx, user, resource, action)
}
