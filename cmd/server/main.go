package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "foodcart/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"foodcart/internal/auth"
	"foodcart/internal/backend"
	"foodcart/internal/cache"
	"foodcart/internal/config"
	"foodcart/internal/db"
	"foodcart/internal/handler"
	"foodcart/internal/logger"
	"foodcart/internal/repository"
	"foodcart/internal/router"
	"foodcart/internal/service"
	"foodcart/internal/session"
)

// @title Food Cart Storefront API
// @version 1.0
// @description Browser-facing storefront: catalog, cart, checkout and admin panel over the food ordering REST backend.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MySQL is optional: it backs the checkout journal and, if selected, sessions.
	var (
		sessionRepo repository.SessionRepository
		journal     service.CheckoutJournal = service.NopJournal{}
	)
	if cfg.MySQLDSN != "" {
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("database init")
		}
		if err := db.Migrate(gormDB, cfg.ResetDB, log); err != nil {
			log.Fatal().Err(err).Msg("database migrate")
		}
		sessionRepo = repository.NewSessionRepository(gormDB)
		asyncJournal := service.NewAsyncJournal(repository.NewCheckoutLogRepository(gormDB), log)
		defer asyncJournal.Close()
		journal = asyncJournal
	} else if cfg.SessionStore == config.SessionStoreMySQL {
		log.Fatal().Msg("SESSION_STORE=mysql requires MYSQL_DSN")
	}

	store, closeStore := newSessionStore(ctx, cfg, sessionRepo, log)
	defer closeStore()

	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, log)
	tokens := auth.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	timing := handler.Timing{RedirectDelay: cfg.RedirectDelay, MessageTTL: cfg.MessageTTL}

	// Initialize services
	cartService := service.NewCartService(client, cfg.DeliveryFee, log)
	reviewService := service.NewReviewService(client, log)
	catalogService := service.NewCatalogService(client, reviewService, cartService, log)
	accountService := service.NewAccountService(client, log)
	adminService := service.NewAdminService(client, log)
	checkoutService := service.NewCheckoutService(client, cartService, journal, service.CheckoutConfig{
		GatewayKeyID:  cfg.GatewayKeyID,
		StoreName:     cfg.StoreName,
		RedirectDelay: cfg.RedirectDelay,
	}, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Register routes
	router.Register(e, router.Options{
		Tokens:        tokens,
		Sessions:      store,
		SecureCookies: cfg.SecureCookies,
		Log:           log,
	}, router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, reviewService, timing),
		Cart:    handler.NewCartHandler(cartService, checkoutService, timing),
		Account: handler.NewAccountHandler(accountService, timing),
		Admin:   handler.NewAdminHandler(adminService, timing),
		Order:   handler.NewOrderHandler(timing),
	})

	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("backend", cfg.BackendURL).Str("session_store", cfg.SessionStore).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func newSessionStore(ctx context.Context, cfg *config.Config, repo repository.SessionRepository, log zerolog.Logger) (session.Store, func()) {
	switch cfg.SessionStore {
	case config.SessionStoreMySQL:
		store := session.NewSQLStore(repo, cfg.SessionTTL)
		go store.RunJanitor(ctx, time.Hour, log)
		return store, func() {}
	case config.SessionStoreMemory:
		log.Warn().Msg("in-memory sessions do not survive restarts")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}
	default:
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, sessions will not persist until it is back")
		}
		return session.NewRedisStore(cacheClient, cfg.SessionTTL), func() { _ = cacheClient.Close() }
	}
}

func swaggerURL(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	host := cfg.SwaggerHost
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
