package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/napowa/napowa-server/internal/api/http/handler"
	"github.com/napowa/napowa-server/internal/api/http/middleware"
	"github.com/napowa/napowa-server/internal/config"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Services groups the collaborators the HTTP layer calls into.
type Services struct {
	Auth       handler.AuthService
	Members    handler.MemberService
	Roles      handler.RoleService
	Push       handler.PushService
	Tokens     middleware.TokenService
	Authorizer middleware.Authorizer
}

// Router represents the HTTP router for napowa operations.
// It wires handlers to routes and applies middleware per route class.
type Router struct {
	services       Services
	checks         map[string]handler.Pinger
	contextManager model.ContextManager
	registry       *prometheus.Registry
	cfg            config.HTTP
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
//
// Parameters:
//   - services: The domain services behind the handlers
//   - checks: Named dependencies probed by /readyz
//   - contextManager: Carries the authenticated identity through the request
//   - registry: Receives HTTP metrics and is exposed on /metrics
//   - cfg: HTTP settings (CORS, rate limit, guest redirect, timeouts)
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	services Services,
	checks map[string]handler.Pinger,
	contextManager model.ContextManager,
	registry *prometheus.Registry,
	cfg config.HTTP,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		checks:         checks,
		contextManager: contextManager,
		registry:       registry,
		cfg:            cfg,
		logger:         logger,
	}
}

// Register builds the route tree.
//
// Route classes:
//   - public: health, readiness and metrics
//   - guest-only: /api/auth/*, a caller with a valid token is redirected
//   - protected: everything else under /api, mutating routes also need a permission
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	metrics := middleware.NewMetrics(r.registry)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.services.Authorizer, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		logging.Handle,
		metrics.Handle,
		chimw.Recoverer,
		cors.Handler(r.corsOptions()),
	)
	if r.cfg.RateLimit > 0 {
		mux.Use(httprate.LimitByIP(r.cfg.RateLimit, time.Minute))
	}
	if r.cfg.RequestTimeout > 0 {
		mux.Use(chimw.Timeout(r.cfg.RequestTimeout))
	}

	health := handler.NewHealth(r.checks, r.logger)
	mux.Get("/healthz", health.Live)
	mux.Get("/readyz", health.Ready)
	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry}))

	mux.Route("/api", func(api chi.Router) {
		api.Group(func(guest chi.Router) {
			guest.Use(authenticate.GuestOnly(r.cfg.GuestRedirect))
			r.registerAuthRoutes(guest)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.RequireAuth)
			r.registerMemberRoutes(protected, authorize)
			r.registerAdminRoutes(protected, authorize)
			r.registerPushRoutes(protected, authorize)
		})
	})

	return mux
}

func (r *Router) registerAuthRoutes(api chi.Router) {
	h := handler.NewAuth(r.services.Auth, r.contextManager, r.logger)

	api.Route("/auth", func(auth chi.Router) {
		auth.Post("/signup", h.SignUp)
		auth.Post("/login", h.Login)
		auth.Post("/otp/verify", h.VerifyTwoFactor)
		auth.Post("/otp/resend", h.ResendTwoFactor)
		auth.Post("/email/verify", h.VerifyEmail)
		auth.Post("/email/resend", h.ResendEmailVerification)
		auth.Post("/password/forgot", h.ForgotPassword)
		auth.Post("/password/validate", h.ValidateResetToken)
		auth.Post("/password/reset", h.ResetPassword)
	})
}

func (r *Router) registerMemberRoutes(api chi.Router, authorize *middleware.Authorize) {
	members := handler.NewMember(r.services.Members, r.contextManager, r.cfg.MaxAvatarBytes, r.logger)
	auth := handler.NewAuth(r.services.Auth, r.contextManager, r.logger)
	canUpdate := authorize.RequirePermission(model.ResourceProfile, model.ActionUpdate)

	api.Route("/me", func(me chi.Router) {
		me.Get("/", members.Me)
		me.Get("/avatar", members.Avatar)

		me.With(canUpdate).Patch("/profile", members.UpdateProfile)
		me.With(canUpdate).Put("/avatar", members.UploadAvatar)
		me.With(canUpdate).Post("/password", auth.ChangePassword)
		me.With(canUpdate).Put("/two-factor", members.SetTwoFactor)
	})
}

func (r *Router) registerAdminRoutes(api chi.Router, authorize *middleware.Authorize) {
	roles := handler.NewRole(r.services.Roles, r.logger)
	members := handler.NewMember(r.services.Members, r.contextManager, r.cfg.MaxAvatarBytes, r.logger)

	api.Route("/roles", func(rr chi.Router) {
		rr.With(authorize.RequirePermission(model.ResourceRoles, model.ActionRead)).Get("/", roles.List)
		rr.With(authorize.RequirePermission(model.ResourceRoles, model.ActionUpdate)).Put("/{id}/permissions", roles.UpdatePermissions)
	})

	api.Route("/users", func(ur chi.Router) {
		ur.With(authorize.RequirePermission(model.ResourceUsers, model.ActionRead)).Get("/{id}", members.GetUser)
		ur.With(authorize.RequirePermission(model.ResourceUsers, model.ActionUpdate)).Put("/{id}/role", roles.AssignRole)
	})
}

func (r *Router) registerPushRoutes(api chi.Router, authorize *middleware.Authorize) {
	push := handler.NewPush(r.services.Push, r.contextManager, r.logger)
	canSubscribe := authorize.RequirePermission(model.ResourceNotifications, model.ActionSubscribe)

	api.Route("/push/subscriptions", func(pr chi.Router) {
		pr.Get("/", push.List)
		pr.With(canSubscribe).Post("/", push.Subscribe)
		pr.With(canSubscribe).Delete("/", push.Unsubscribe)
	})
}

func (r *Router) corsOptions() cors.Options {
	allowed := r.cfg.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         int((10 * time.Minute).Seconds()),
	}
}
