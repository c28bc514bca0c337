package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/model"
)

var _ model.PushSubscriptionStore = (*PushSubscriptionRepository)(nil)

type PushSubscriptionRepository struct {
	db *Connection
}

func NewPushSubscriptionRepository(db *Connection) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

// Upsert stores sub, moving an already known endpoint to the given user.
func (r *PushSubscriptionRepository) Upsert(ctx context.Context, sub model.PushSubscription) (model.PushSubscription, error) {
	const query = `INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (endpoint) DO UPDATE
		SET user_id = EXCLUDED.user_id, p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
		RETURNING id, user_id, endpoint, p256dh, auth, created_at`

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	var saved model.PushSubscription
	err := r.db.QueryRow(ctx, query, sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth).Scan(
		&saved.ID, &saved.UserID, &saved.Endpoint, &saved.P256dh, &saved.Auth, &saved.CreatedAt,
	)
	if err != nil {
		return model.PushSubscription{}, fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return saved, nil
}

func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`, userID, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PushSubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]model.PushSubscription, 0)
	for rows.Next() {
		var s model.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate push subscriptions: %w", err)
	}
	return subs, nil
}
