package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/internal/cache"
	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/logging"
	"servicehub/internal/metrics"
	"servicehub/internal/middleware"
	"servicehub/internal/modules/admin"
	"servicehub/internal/modules/auth"
	"servicehub/internal/modules/booking"
	"servicehub/internal/modules/chat"
	"servicehub/internal/modules/directory"
	"servicehub/internal/modules/notification"
	"servicehub/internal/modules/profile"
	"servicehub/internal/modules/review"
	jwtsvc "servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	redisClient := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	directoryCache := cache.NewDirectoryCache(redisClient, cfg.DirectoryCacheTTL)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cache.Ping(ctx, redisClient); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, directory cache disabled")
			directoryCache = cache.NewDirectoryCache(nil, 0)
		}
		cancel()
	}

	metrics.Register()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	chatRepo := repository.NewChatRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	notificationService := notification.NewService(notificationRepo, log)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, profileRepo, providerRepo, tokenRepo, j, cfg.RefreshTTL, log)
	authHandler := auth.NewHandler(authService)

	directoryService := directory.NewService(providerRepo, reviewRepo, directoryCache, log)
	directoryHandler := directory.NewHandler(directoryService)

	bookingService := booking.NewService(bookingRepo, providerRepo, chatRepo, notificationService, log)
	bookingHandler := booking.NewHandler(bookingService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(chatRepo, bookingRepo, providerRepo, notificationService, hub, log)
	chatHandler := chat.NewHandler(chatService, hub, log)

	reviewService := review.NewService(reviewRepo, bookingRepo, providerRepo, directoryCache, log)
	reviewHandler := review.NewHandler(reviewService)

	profileService := profile.NewService(profileRepo, userRepo, providerRepo, directoryCache, log)
	profileHandler := profile.NewHandler(profileService)

	adminService := admin.NewService(providerRepo, userRepo, bookingRepo, notificationService, directoryCache, log)
	adminHandler := admin.NewHandler(adminService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(authLimiter.Middleware())

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))

		providerOnly := v1.Group("/")
		providerOnly.Use(middleware.JWTAuth(j), middleware.RequireAnyRole(userRepo, domain.RoleServiceProvider))

		adminOnly := v1.Group("/admin")
		adminOnly.Use(middleware.JWTAuth(j), middleware.RequireAnyRole(userRepo, domain.RoleAdmin))

		authHandler.RegisterRoutes(public, protected)
		directoryHandler.RegisterRoutes(v1.Group("/"))
		bookingHandler.RegisterRoutes(protected, providerOnly)
		chatHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(v1.Group("/"), protected)
		profileHandler.RegisterRoutes(protected, providerOnly)
		notificationHandler.RegisterRoutes(protected)
		adminHandler.RegisterRoutes(adminOnly)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
