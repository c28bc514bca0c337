package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpctx "github.com/napowa/napowa-server/internal/api/http/context"
	"github.com/napowa/napowa-server/internal/api/http/handler"
	"github.com/napowa/napowa-server/internal/api/http/router"
	httpServer "github.com/napowa/napowa-server/internal/api/http/server"
	"github.com/napowa/napowa-server/internal/config"
	"github.com/napowa/napowa-server/internal/events"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/mail"
	"github.com/napowa/napowa-server/internal/model"
	"github.com/napowa/napowa-server/internal/ratelimit"
	"github.com/napowa/napowa-server/internal/repository/postgres"
	"github.com/napowa/napowa-server/internal/server"
	"github.com/napowa/napowa-server/internal/service"
	storage "github.com/napowa/napowa-server/internal/storage/minio"
	"github.com/napowa/napowa-server/internal/telemetry"
	"github.com/napowa/napowa-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel).With("service", cfg.OTel.ServiceName)

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTel, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	checks := map[string]handler.Pinger{"postgres": db}

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	otpRepo := postgres.NewOTPRepository(db)
	resetRepo := postgres.NewResetTicketRepository(db)
	pushRepo := postgres.NewPushSubscriptionRepository(db)

	// Optional adapters stay nil interfaces when unconfigured.
	var limiter model.OTPLimiter
	if cfg.Redis.Addr != "" {
		otpLimiter, rdb, err := ratelimit.New(ctx, cfg.Redis, cfg.OTP, logger)
		if err != nil {
			logger.Fatal("failed to initialize otp limiter", "error", err)
		}
		defer rdb.Close()
		limiter = otpLimiter
		checks["redis"] = otpLimiter
	} else {
		logger.Warn("REDIS_ADDR is empty, otp issuance is not throttled")
	}

	var publisher model.EventPublisher
	if cfg.NATS.URL != "" {
		p, err := events.New(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("failed to initialize event publisher", "error", err)
		}
		defer p.Close()
		publisher = p
		checks["nats"] = p
	}

	var avatars model.Storage
	if cfg.Storage.Endpoint != "" {
		store, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize object storage", "error", err)
		}
		avatars = store
		checks["minio"] = store
	}

	var mailer model.Mailer
	if sender := mail.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From); sender != nil {
		mailer = sender
	} else {
		logger.Warn("SMTP_HOST is empty, account mail is disabled")
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	tokenService := service.NewTokenService(tokenManager, logger)
	credentials := service.NewCredentials(userRepo, profileRepo, roleRepo, service.NewPasswordHasher(cfg.Bcrypt.Cost), cfg.DefaultRole, logger)
	otps := service.NewOTPLedger(otpRepo, limiter, cfg.OTP.TwoFactorTTL, cfg.OTP.EmailVerificationTTL, logger)
	resets := service.NewResetLedger(resetRepo, cfg.Reset.TTL, logger)

	authService := service.NewAuth(credentials, otps, resets, tokenService, mailer, publisher, cfg.Reset.LinkURL, logger)
	memberService := service.NewMembers(userRepo, profileRepo, roleRepo, avatars, logger)
	roleService := service.NewRoles(roleRepo, userRepo, publisher, logger)
	pushService := service.NewPush(pushRepo, logger)
	authorizer := service.NewAuthorizer(userRepo, roleRepo, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.New(
		router.Services{
			Auth:       authService,
			Members:    memberService,
			Roles:      roleService,
			Push:       pushService,
			Tokens:     tokenService,
			Authorizer: authorizer,
		},
		checks,
		httpctx.NewManager(),
		registry,
		cfg.HTTP,
		logger,
	)
	srv := httpServer.NewHTTPServer(otelhttp.NewHandler(r.Register(), cfg.OTel.ServiceName), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error during tracing shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
