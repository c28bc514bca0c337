package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/napowa/napowa-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, password_hash, role_id, is_verified, two_factor_enabled, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.RoleID, &user.IsVerified,
		&user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create inserts the user and its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, user model.User, profile model.Profile) (model.User, model.Profile, error) {
	const userQuery = `INSERT INTO users (id, email, password_hash, role_id, is_verified, two_factor_enabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns

	var (
		savedUser    model.User
		savedProfile model.Profile
	)
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		savedUser, err = scanUser(tx.QueryRow(ctx, userQuery,
			user.ID, user.Email, user.PasswordHash, user.RoleID, user.IsVerified, user.TwoFactorEnabled,
			user.CreatedAt, user.UpdatedAt,
		))
		if err != nil {
			return err
		}

		profile.UserID = savedUser.ID
		savedProfile, err = insertProfile(ctx, tx, profile)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.Profile{}, model.ErrConflict
		}
		return model.User{}, model.Profile{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, savedProfile, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(ctx, "password", `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`, id, passwordHash)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, "verification flag", `UPDATE users SET is_verified = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`, id, true)
}

func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, roleID int64) error {
	return r.update(ctx, "role", `UPDATE users SET role_id = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`, id, roleID)
}

func (r *UserRepository) SetTwoFactor(ctx context.Context, id uuid.UUID, enabled bool) error {
	return r.update(ctx, "two factor flag", `UPDATE users SET two_factor_enabled = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`, id, enabled)
}

func (r *UserRepository) update(ctx context.Context, what, query string, id uuid.UUID, value any) error {
	tag, err := r.db.Exec(ctx, query, id, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
