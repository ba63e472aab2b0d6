// cmd/auth-starter-web/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/dwestland/auth-starter/internal/api/rest/v1"
	"github.com/dwestland/auth-starter/internal/api/sessioncookie"
	"github.com/dwestland/auth-starter/internal/api/web"
	"github.com/dwestland/auth-starter/internal/api/web/proxy"
	"github.com/dwestland/auth-starter/internal/app"
	"github.com/dwestland/auth-starter/internal/app/actions"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/infrastructure/cryptography"
	"github.com/dwestland/auth-starter/internal/infrastructure/mailer"
	"github.com/dwestland/auth-starter/internal/infrastructure/oauthprovider"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/web-app.yaml"
	}

	webConfig, err := config.InitializeWebConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&webConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(webConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(webConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	authenticator auth.Authenticator
	magicLinks    auth.MagicLinkSender
	social        auth.SocialAuthenticator
	messages      messages.MessageService
	actions       *actions.Actions
	cookie        *sessioncookie.Cookie
	metrics       *metrics.Metrics
	registry      *prometheus.Registry
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.WebConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	accountRepo, err := persistence.NewGormAccountRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create account repository: %w", err)
	}
	sessionRepo, err := persistence.NewGormSessionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}
	verificationRepo, err := persistence.NewGormVerificationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification repository: %w", err)
	}
	messageRepo, err := persistence.NewGormMessageRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}

	// Initialize infrastructure
	hasher, err := cryptography.NewBcryptHasher(cfg.Auth.BcryptCost, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	issuer, err := cryptography.NewJWTTokenIssuer(cfg.Auth.Secret, cfg.Auth.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	sender, err := mailer.NewSender(&cfg.Mail, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}
	providers := oauthprovider.FromSettings(&cfg.Auth)
	log.Info("OAuth providers enabled", "providers", cfg.Auth.EnabledProviders())

	// Initialize services
	authenticator, err := app.NewAuthService(userRepo, accountRepo, sessionRepo, verificationRepo, hasher, &cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	magicLinks, err := app.NewMagicLinkService(userRepo, verificationRepo, authenticator, issuer, sender, &cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create magic link service: %w", err)
	}
	social, err := app.NewSocialService(providers, userRepo, accountRepo, verificationRepo, authenticator, &cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create social service: %w", err)
	}
	messageService, err := app.NewMessageService(messageRepo, sender, cfg.Mail.Recipient(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}
	log.Info("Application services initialized successfully")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	return &appDependencies{
		authenticator: authenticator,
		magicLinks:    magicLinks,
		social:        social,
		messages:      messageService,
		actions:       actions.New(authenticator, magicLinks, messageService, m, log),
		cookie:        sessioncookie.New(cfg.Auth.CookieName, cfg.SecureCookies()),
		metrics:       m,
		registry:      registry,
	}, nil
}

// setupRouter wires middleware, pages and the auth API onto a new engine
func setupRouter(cfg *config.WebConfig, deps *appDependencies, log logger.Logger) (*gin.Engine, error) {
	r := gin.New()
	// Trailing-slash redirects are answered before middleware runs, so
	// "/user/" would skip the route proxy.
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), deps.metrics.Middleware())

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.HTMLRender = renderer

	routeProxy, err := proxy.New(proxy.Config{
		CookieName: cfg.Auth.CookieName,
		SignInPath: v1.SignInPath,
		Protected:  proxy.DefaultProtected,
		Excluded:   proxy.DefaultExcluded,
	}, deps.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create route proxy: %w", err)
	}
	r.Use(routeProxy)

	handler := web.NewHandler(deps.actions, deps.social, deps.messages, deps.cookie, log)
	web.SetupRoutes(r, handler, web.SessionLoader(deps.authenticator, deps.cookie, log))

	// Configure CORS
	corsMiddleware := cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	v1.SetupRoutes(r, deps.authenticator, deps.magicLinks, deps.social, deps.cookie, deps.metrics, log, corsMiddleware)

	r.GET("/metrics", gin.WrapH(metrics.Handler(deps.registry)))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.WebConfig, deps *appDependencies, log logger.Logger) error {
	r, err := setupRouter(cfg, deps, log)
	if err != nil {
		return err
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
