package model

import (
	"context"
	"slices"
	"time"
)

// Resource and action names used by route guards.
const (
	ResourceProfile       = "profile"
	ResourceRoles         = "roles"
	ResourceUsers         = "users"
	ResourceNotifications = "notifications"

	ActionRead      = "read"
	ActionUpdate    = "update"
	ActionSubscribe = "subscribe"
)

// RoleStore defines persistence operations for roles.
type RoleStore interface {
	GetByID(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	UpdatePermissions(ctx context.Context, id int64, permissions Permissions) (Role, error)
}

// Role is a named set of grants.
type Role struct {
	ID          int64
	Name        string
	Permissions Permissions
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permissions maps a resource name to the actions allowed on it.
// It is a flat enumeration: no wildcards and no inheritance.
type Permissions map[string][]string

// Has reports whether action is granted on resource. Matching is exact and
// case-sensitive; an absent resource grants nothing.
func (p Permissions) Has(resource, action string) bool {
	actions, ok := p[resource]
	if !ok {
		return false
	}
	return slices.Contains(actions, action)
}
