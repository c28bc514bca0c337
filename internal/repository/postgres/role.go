package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/napowa/napowa-server/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{db: db}
}

const roleColumns = `id, name, permissions, created_at, updated_at`

func scanRole(row pgx.Row) (model.Role, error) {
	var (
		role model.Role
		raw  []byte
	)
	if err := row.Scan(&role.ID, &role.Name, &raw, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return model.Role{}, err
	}
	role.Permissions = model.Permissions{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &role.Permissions); err != nil {
			return model.Role{}, fmt.Errorf("failed to decode permissions of role %s: %w", role.Name, err)
		}
	}
	return role, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (model.Role, error) {
	role, err := scanRole(r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by id: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (model.Role, error) {
	role, err := scanRole(r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) UpdatePermissions(ctx context.Context, id int64, permissions model.Permissions) (model.Role, error) {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to encode permissions: %w", err)
	}

	const query = `UPDATE roles SET permissions = $2, updated_at = $3 WHERE id = $1 RETURNING ` + roleColumns
	role, err := scanRole(r.db.QueryRow(ctx, query, id, raw, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to update role permissions: %w", err)
	}
	return role, nil
}
