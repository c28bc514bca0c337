package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PushSubscriptionStore persists web push endpoints per user.
type PushSubscriptionStore interface {
	Upsert(ctx context.Context, sub PushSubscription) (PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]PushSubscription, error)
}

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
