package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Push keeps browser push subscriptions per user.
type Push struct {
	store  model.PushSubscriptionStore
	logger *logger.Logger
}

func NewPush(store model.PushSubscriptionStore, logger *logger.Logger) *Push {
	return &Push{store: store, logger: logger}
}

func (p *Push) Subscribe(ctx context.Context, userID uuid.UUID, endpoint, p256dh, auth string) (model.PushSubscription, error) {
	f := fieldErrors{}
	if u, err := url.Parse(endpoint); err != nil || u.Scheme != "https" || u.Host == "" {
		f["endpoint"] = "must be an https URL"
	}
	f.require("keys.p256dh", p256dh)
	f.require("keys.auth", auth)
	if err := f.err(); err != nil {
		return model.PushSubscription{}, err
	}

	sub, err := p.store.Upsert(ctx, model.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	})
	if err != nil {
		return model.PushSubscription{}, fmt.Errorf("failed to save subscription: %w", err)
	}

	p.logger.Debug("Push service: subscribed", "user_id", userID)

	return sub, nil
}

func (p *Push) Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) error {
	err := p.store.DeleteByEndpoint(ctx, userID, endpoint)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrNotFound("subscription")
	}
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (p *Push) List(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error) {
	subs, err := p.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
