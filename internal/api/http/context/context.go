package context

import (
	"context"

	"github.com/napowa/napowa-server/internal/model"
)

// identityKey is the context key the authenticated identity is stored under.
type identityKey struct{}

// Manager represents a request context manager for identity operations.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the identity set by the authentication
// middleware. The boolean is false for anonymous requests.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	if !ok {
		return model.Identity{}, false
	}
	return identity, true
}
