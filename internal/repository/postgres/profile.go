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

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, first_name, last_name, phone, id_number, county, member_type, rank, station,
	service_number, avatar_key, created_at, updated_at`

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.IDNumber, &p.County, &p.MemberType,
		&p.Rank, &p.Station, &p.ServiceNumber, &p.AvatarKey, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func insertProfile(ctx context.Context, q querier, p model.Profile) (model.Profile, error) {
	const query = `INSERT INTO member_profiles (user_id, first_name, last_name, phone, id_number, county, member_type,
			rank, station, service_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + profileColumns

	now := time.Now()
	return scanProfile(q.QueryRow(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Phone, p.IDNumber, p.County, p.MemberType,
		p.Rank, p.Station, p.ServiceNumber, now,
	))
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM member_profiles WHERE user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member_profiles WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}

func (r *ProfileRepository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member_profiles WHERE id_number = $1)`, idNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check id number: %w", err)
	}
	return exists, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p model.Profile) (model.Profile, error) {
	const query = `UPDATE member_profiles
		SET first_name = $2, last_name = $3, county = $4, rank = $5, station = $6, service_number = $7, updated_at = $8
		WHERE user_id = $1
		RETURNING ` + profileColumns

	saved, err := scanProfile(r.db.QueryRow(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.County, p.Rank, p.Station, p.ServiceNumber, time.Now(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return saved, nil
}

func (r *ProfileRepository) SetAvatarKey(ctx context.Context, userID uuid.UUID, key string) error {
	tag, err := r.db.Exec(ctx, `UPDATE member_profiles SET avatar_key = $2, updated_at = $3 WHERE user_id = $1`,
		userID, key, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set avatar key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
