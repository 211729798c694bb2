package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"community-pulse/config"
	"community-pulse/internal/cache"
	"community-pulse/internal/database"
	"community-pulse/internal/handler"
	"community-pulse/internal/middleware"
	"community-pulse/internal/queue"
	"community-pulse/internal/repository"
	"community-pulse/internal/service"
	"community-pulse/internal/storage"
	"community-pulse/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	images, err := storage.NewLocalImageStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// repositories
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// redis helpers
	attendance := cache.NewRedisAttendanceManager(rdb)
	guard := cache.NewRedisActionGuard(rdb)

	notificationQueue, err := queue.NewRedisStreamNotificationQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize notification queue: %v", err)
	}

	// services
	authService := service.NewAuthService(userRepo, cfg.Auth)
	eventService := service.NewEventService(eventRepo, registrationRepo, attendance, notificationQueue, images)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, attendance, guard, notificationQueue)
	adminService := service.NewAdminService(eventRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationWorker := worker.NewNotificationWorker(notificationRepo, notificationQueue)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	auth := middleware.Auth(authService, cfg.Auth.JWTSecret)
	requireAdmin := middleware.RequireAdmin()

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.Static("/uploads", cfg.Upload.Dir)

	handler.NewAuthHandler(authService).RegisterRoutes(router, auth)
	handler.NewEventHandler(eventService).RegisterRoutes(router, auth)
	handler.NewRegistrationHandler(registrationService).RegisterRoutes(router, auth)
	handler.NewAdminHandler(adminService).RegisterRoutes(router, auth, requireAdmin)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(router, auth)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
