package model

import "context"

// Event subjects published on account changes.
const (
	SubjectUserRegistered = "napowa.users.registered"
	SubjectUserVerified   = "napowa.users.verified"
	SubjectPasswordReset  = "napowa.users.password_reset"
	SubjectRoleUpdated    = "napowa.roles.updated"
)

// EventPublisher sends domain events to a message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
