package service

import (
	"context"

	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// notify publishes an event when a publisher is configured. Delivery
// failures are logged and never fail the request.
func notify(ctx context.Context, publisher model.EventPublisher, log *logger.Logger, subject string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, subject, payload); err != nil {
		log.Warn("failed to publish event", "subject", subject, "error", err.Error())
	}
}

// UserEvent is the payload of user lifecycle events.
type UserEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// RoleEvent is the payload of role change events.
type RoleEvent struct {
	RoleID      int64             `json:"roleId"`
	Name        string            `json:"name"`
	Permissions model.Permissions `json:"permissions"`
}
