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

var _ model.OTPStore = (*OTPRepository)(nil)

type OTPRepository struct {
	db *Connection
}

func NewOTPRepository(db *Connection) *OTPRepository {
	return &OTPRepository{db: db}
}

// Replace removes every code of the same user and purpose and stores otp.
func (r *OTPRepository) Replace(ctx context.Context, otp model.OTP) error {
	const (
		deleteQuery = `DELETE FROM otps WHERE user_id = $1 AND purpose = $2`
		insertQuery = `INSERT INTO otps (id, user_id, purpose, code, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	)

	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, otp.UserID, string(otp.Purpose)); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, insertQuery, otp.ID, otp.UserID, string(otp.Purpose), otp.Code, otp.ExpiresAt, otp.CreatedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to replace otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) GetLatestLive(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose, now time.Time) (model.OTP, error) {
	const query = `SELECT id, user_id, purpose, code, expires_at, created_at
		FROM otps
		WHERE user_id = $1 AND purpose = $2 AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`

	var (
		otp    model.OTP
		stored string
	)
	err := r.db.QueryRow(ctx, query, userID, string(purpose), now).Scan(
		&otp.ID, &otp.UserID, &stored, &otp.Code, &otp.ExpiresAt, &otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OTP{}, model.ErrNotFound
		}
		return model.OTP{}, fmt.Errorf("failed to get otp: %w", err)
	}
	otp.Purpose = model.OTPPurpose(stored)
	return otp, nil
}

// ConsumeMatching deletes the latest live code when it equals code and then
// clears the rest for the same user and purpose. Concurrent callers race on
// the first delete; only one of them sees a deleted row.
func (r *OTPRepository) ConsumeMatching(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose, code string, now time.Time) (bool, error) {
	const (
		consumeQuery = `DELETE FROM otps
			WHERE id = (
				SELECT id FROM otps
				WHERE user_id = $1 AND purpose = $2 AND expires_at > $4
				ORDER BY created_at DESC
				LIMIT 1
			) AND code = $3`
		cleanupQuery = `DELETE FROM otps WHERE user_id = $1 AND purpose = $2`
	)

	var matched bool
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, consumeQuery, userID, string(purpose), code, now)
		if err != nil {
			return err
		}
		matched = tag.RowsAffected() == 1
		if !matched {
			return nil
		}
		_, err = tx.Exec(ctx, cleanupQuery, userID, string(purpose))
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}
	return matched, nil
}

func (r *OTPRepository) DeleteAll(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM otps WHERE user_id = $1 AND purpose = $2`, userID, string(purpose)); err != nil {
		return fmt.Errorf("failed to delete otps: %w", err)
	}
	return nil
}
