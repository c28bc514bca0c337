package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Authorizer checks a user's role grants.
type Authorizer interface {
	CanUser(ctx context.Context, userID uuid.UUID, resource, action string) (bool, error)
}

// Authorize gates routes on a (resource, action) permission. It must run
// after Authenticate.RequireAuth.
type Authorize struct {
	authorizer     Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates a new Authorize middleware instance.
func NewAuthorize(authorizer Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{authorizer: authorizer, contextManager: contextManager, logger: logger}
}

// RequirePermission allows the request only if the caller's role grants
// action on resource.
func (m *Authorize) RequirePermission(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := m.contextManager.GetIdentityFromContext(r.Context())
			if !ok {
				respond.Error(w, r, m.logger, apierrors.NewErrMissingAuthorizationToken())
				return
			}

			allowed, err := m.authorizer.CanUser(r.Context(), identity.UserID, resource, action)
			if err != nil {
				// The account behind a still-valid token is gone.
				if errors.Is(err, model.ErrNotFound) {
					respond.Error(w, r, m.logger, apierrors.NewErrInvalidAuthorizationToken())
					return
				}
				respond.Error(w, r, m.logger, err)
				return
			}
			if !allowed {
				respond.Error(w, r, m.logger, apierrors.NewErrForbidden(resource, action))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
