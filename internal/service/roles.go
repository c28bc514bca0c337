package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Roles administers role grants and assignments.
type Roles struct {
	roleStore model.RoleStore
	userStore model.UserStore
	publisher model.EventPublisher
	logger    *logger.Logger
}

func NewRoles(roleStore model.RoleStore, userStore model.UserStore, publisher model.EventPublisher, logger *logger.Logger) *Roles {
	return &Roles{roleStore: roleStore, userStore: userStore, publisher: publisher, logger: logger}
}

func (r *Roles) List(ctx context.Context) ([]model.Role, error) {
	roles, err := r.roleStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// UpdatePermissions replaces the grants of a role.
func (r *Roles) UpdatePermissions(ctx context.Context, roleID int64, permissions model.Permissions) (model.Role, error) {
	if err := validatePermissions(permissions); err != nil {
		return model.Role{}, err
	}

	role, err := r.roleStore.UpdatePermissions(ctx, roleID, permissions)
	if errors.Is(err, model.ErrNotFound) {
		return model.Role{}, apierrors.NewErrNotFound("role")
	}
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	notify(ctx, r.publisher, r.logger, model.SubjectRoleUpdated, RoleEvent{RoleID: role.ID, Name: role.Name, Permissions: role.Permissions})

	r.logger.Info("Roles service: permissions updated", "role", role.Name)

	return role, nil
}

// AssignRole moves a user to the named role.
func (r *Roles) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := r.roleStore.GetByName(ctx, roleName)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrRoleNotFound(roleName)
	}
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}

	err = r.userStore.SetRole(ctx, userID, role.ID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	r.logger.Info("Roles service: role assigned", "user_id", userID, "role", role.Name)

	return nil
}

// validatePermissions rejects empty names and duplicate actions within a
// resource.
func validatePermissions(permissions model.Permissions) error {
	f := fieldErrors{}
	for resource, actions := range permissions {
		if strings.TrimSpace(resource) == "" {
			f["resource"] = "names must not be empty"
			continue
		}
		seen := make(map[string]struct{}, len(actions))
		for _, action := range actions {
			if strings.TrimSpace(action) == "" {
				f[resource] = "action names must not be empty"
				break
			}
			if _, dup := seen[action]; dup {
				f[resource] = fmt.Sprintf("duplicate action %q", action)
				break
			}
			seen[action] = struct{}{}
		}
	}
	return f.err()
}
