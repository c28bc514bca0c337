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

var _ model.ResetTicketStore = (*ResetTicketRepository)(nil)

type ResetTicketRepository struct {
	db *Connection
}

func NewResetTicketRepository(db *Connection) *ResetTicketRepository {
	return &ResetTicketRepository{db: db}
}

// Replace drops earlier tickets of the same user and stores ticket.
func (r *ResetTicketRepository) Replace(ctx context.Context, ticket model.ResetTicket) error {
	const (
		deleteQuery = `DELETE FROM password_reset_tickets WHERE user_id = $1`
		insertQuery = `
        INSERT INTO password_reset_tickets (id, user_id, token_hash, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	)

	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, ticket.UserID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, insertQuery, ticket.ID, ticket.UserID, ticket.TokenHash, ticket.ExpiresAt, ticket.CreatedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create reset ticket: %w", err)
	}
	return nil
}

func (r *ResetTicketRepository) GetLiveByHash(ctx context.Context, tokenHash []byte, now time.Time) (model.ResetTicket, error) {
	const query = `
        SELECT id, user_id, token_hash, expires_at, created_at
        FROM password_reset_tickets WHERE token_hash = $1 AND expires_at > $2
    `
	var t model.ResetTicket
	err := r.db.QueryRow(ctx, query, tokenHash, now).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ResetTicket{}, model.ErrNotFound
		}
		return model.ResetTicket{}, fmt.Errorf("failed to get reset ticket by hash: %w", err)
	}
	return t, nil
}

func (r *ResetTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM password_reset_tickets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete reset ticket: %w", err)
	}
	return nil
}

// Redeem claims the live ticket with a conditional delete and stores the new
// password hash. Both happen in one transaction, so a failed password write
// leaves the ticket usable and a second redeem finds nothing.
func (r *ResetTicketRepository) Redeem(ctx context.Context, tokenHash []byte, now time.Time, passwordHash string) (uuid.UUID, error) {
	const (
		claimQuery = `
        DELETE FROM password_reset_tickets WHERE token_hash = $1 AND expires_at > $2
        RETURNING user_id
    `
		passwordQuery = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`
	)

	var userID uuid.UUID
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, claimQuery, tokenHash, now).Scan(&userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, passwordQuery, userID, passwordHash, now)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, model.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to redeem reset ticket: %w", err)
	}
	return userID, nil
}
