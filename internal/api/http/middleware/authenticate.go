package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// TokenService resolves an identity from a bearer token.
type TokenService interface {
	Decode(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// RequireAuth rejects requests without a valid session token with 401.
func (m *Authenticate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authenticate(r)
		if err != nil {
			respond.Error(w, r, m.logger, err)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GuestOnly redirects requests that already carry a valid session token to
// target with 303 See Other. Anonymous requests pass through.
func (m *Authenticate) GuestOnly(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearerToken(r) != "" {
				if _, err := m.authenticate(r); err == nil {
					http.Redirect(w, r, target, http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Authenticate) authenticate(r *http.Request) (model.Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return model.Identity{}, apierrors.NewErrMissingAuthorizationToken()
	}

	// Decode failures all look the same to the caller.
	identity, err := m.tokenService.Decode(r.Context(), token)
	if err != nil {
		return model.Identity{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	return identity, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
