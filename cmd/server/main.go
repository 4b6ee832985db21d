package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/apiclient"
	"github.com/AnshRaj112/guestexp-web/internal/config"
	"github.com/AnshRaj112/guestexp-web/internal/database"
	"github.com/AnshRaj112/guestexp-web/internal/handlers"
	"github.com/AnshRaj112/guestexp-web/internal/middleware"
	"github.com/AnshRaj112/guestexp-web/internal/render"
	"github.com/AnshRaj112/guestexp-web/internal/routes"
	"github.com/AnshRaj112/guestexp-web/internal/services"
)

func main() {
	// Load env
	envErr := godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it banners live in memory and alerts stay on this instance
	var redisClient *redis.Client
	var banners services.BannerStore
	if cfg.RedisEnabled() {
		logger.Info("connecting to redis")
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		banners = services.NewRedisBannerStore(redisClient, cfg.BannerTTL)
		logger.Info("connected to redis")
	} else {
		banners = services.NewMemoryBannerStore(cfg.BannerTTL)
		logger.Warn("REDIS_URI not set, using in-memory banners and a local alert feed")
	}

	var images *services.ImageResolver
	if cfg.CloudinaryEnabled() {
		images, err = services.NewImageResolver(cfg.APIBaseURL, cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Warn("failed to initialize cloudinary, image ids will not resolve", zap.Error(err))
		}
	}
	if images == nil {
		images, _ = services.NewImageResolver(cfg.APIBaseURL, "", "", "")
	}

	renderer, err := render.New(cfg.BannerTTL)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	alerts := services.NewAlertHub(redisClient, logger.Named("alerts"))
	alerts.Start(ctx)

	app := &handlers.App{
		API:               apiclient.New(cfg.APIBaseURL, cfg.APITimeout),
		Renderer:          renderer,
		Banners:           banners,
		Images:            images,
		Alerts:            alerts,
		Logger:            logger,
		SentimentDebounce: cfg.SentimentDebounce,
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"},
		ExposedHeaders:   []string{"HX-Trigger", "HX-Reswap"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → SentimentRateLimit
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		logger.Info("production security enabled")
	}

	routes.SetupRoutes(r, app, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.APITimeout + 5*time.Second,
		SecureCookies:  cfg.IsProduction(),
		Throttle:       middleware.SubmissionThrottle(redisClient, logger.Named("throttle"), http.HandlerFunc(app.SubmissionLimited)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("guest experience web running",
		zap.String("addr", srv.Addr),
		zap.String("api", cfg.APIBaseURL),
		zap.String("env", cfg.Environment),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}
