package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/config"
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/handlers/admin"
	"furniture_back_end/internal/handlers/product"
	"furniture_back_end/internal/handlers/user"
	"furniture_back_end/internal/middleware"
	"furniture_back_end/internal/routes"
	"furniture_back_end/internal/services"
	"furniture_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogJSON)
	if err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("❌ server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	seed := cfg.Catalog.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cat := catalog.Generate(cfg.Catalog.Size, seed)
	logger.Info("🪑 catalog generated", zap.Int("products", cat.Len()))

	sessionStore := database.NewSessionStore()
	cartStore := database.NewCartStore()
	orderStore := database.NewOrderStore()
	go database.SweepSessions(ctx, sessionStore, cartStore,
		time.Duration(cfg.SessionMaxAge)*time.Second, sessionSweepInterval, logger)

	var (
		notifier  cache.Notifier  = cache.NewMemoryNotifier()
		blacklist cache.Blacklist = cache.NewMemoryBlacklist()
	)
	if cfg.Redis.Addr != "" {
		client, err := cache.ConnectRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		notifier = cache.NewRedisNotifier(client, logger)
		blacklist = cache.NewRedisBlacklist(client, logger)
		logger.Info("✅ connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var snapshotStore services.SnapshotStore
	minioStore, err := services.ConnectMinio(ctx, cfg.MinIO, logger)
	if err != nil {
		return err
	}
	if minioStore != nil {
		snapshotStore = minioStore
	}

	var renderer utils.Renderer = utils.NoopRenderer{}
	if cfg.Snapshot.Renderer == "chrome" {
		renderer = utils.NewChromeRenderer(cfg.Snapshot.Width)
	}

	mailer, err := utils.NewMailer(cfg.SMTP)
	if err != nil {
		return err
	}
	cartDeps := services.CartDeps{
		Catalog:  cat,
		Carts:    cartStore,
		Orders:   orderStore,
		Sessions: sessionStore,
		Notifier: notifier,
		Log:      logger,
	}
	if mailer != nil {
		cartDeps.Mailer = mailer
		logger.Info("📧 order notifications enabled", zap.String("to", cfg.SMTP.ShopAddress))
	}

	adminSvc, err := services.NewAdminService(services.AdminOptions{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.JWTSecret,
	}, orderStore, blacklist, logger)
	if err != nil {
		return err
	}
	snapshots := services.NewSnapshotService(orderStore, renderer, snapshotStore, logger)

	router := routes.NewRouter(routes.Deps{
		Products: product.NewHandler(cat),
		Members: user.NewHandler(user.Deps{
			Auth:      services.NewAuthService(sessionStore, logger),
			Cart:      services.NewCartService(cartDeps),
			Orders:    services.NewOrderService(orderStore, sessionStore),
			Snapshots: snapshots,
			Notifier:  notifier,
			Log:       logger,
		}),
		Admin:       admin.NewHandler(adminSvc, snapshots),
		AdminAuth:   adminSvc,
		Cookies:     middleware.NewCookieStore(cfg.SessionSecret, cfg.SessionMaxAge, cfg.IsProd()),
		Sessions:    sessionStore,
		CORSOrigins: cfg.CORSOrigins,
		Log:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 storefront listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
