package handler

import (
	"net/http"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Role serves role administration.
type Role struct {
	roleService RoleService
	logger      *logger.Logger
}

// NewRole creates a new Role handler.
func NewRole(roleService RoleService, logger *logger.Logger) *Role {
	return &Role{roleService: roleService, logger: logger}
}

// List handles GET /api/roles.
func (h *Role) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, newRoleResponse(role))
	}
	respond.JSON(w, http.StatusOK, out)
}

// UpdatePermissions handles PUT /api/roles/{id}/permissions. The body is the
// complete replacement grant mapping.
func (h *Role) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	roleID, err := roleIDParam(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var permissions model.Permissions
	if err := decodeJSON(w, r, &permissions); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if permissions == nil {
		handleError(w, r, h.logger, apierrors.NewErrBadRequest("permissions must be an object"))
		return
	}

	role, err := h.roleService.UpdatePermissions(r.Context(), roleID, permissions)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, newRoleResponse(role))
}

// AssignRole handles PUT /api/users/{id}/role.
func (h *Role) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req assignRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if req.Role == "" {
		handleError(w, r, h.logger, apierrors.NewErrValidation(map[string]string{"role": "is required"}))
		return
	}

	if err := h.roleService.AssignRole(r.Context(), userID, req.Role); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
