package main

import (
	"context"
	"log"
	"time"

	"go-event-registry/config"
	"go-event-registry/internal/cache"
	"go-event-registry/internal/database"
	"go-event-registry/internal/feed"
	"go-event-registry/internal/handler"
	"go-event-registry/internal/repository"
	"go-event-registry/internal/repository/memory"
	"go-event-registry/internal/service"
	"go-event-registry/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	var (
		eventRepo        repository.EventRepository
		userRepo         repository.UserRepository
		notificationRepo repository.NotificationRepository
		notificationFeed feed.NotificationFeed
		eventCache       cache.EventCache
	)

	if cfg.Server.Storage == "memory" {
		eventRepo = memory.NewEventRepository()
		userRepo = memory.NewUserRepository()
		notificationRepo = memory.NewNotificationRepository()
		notificationFeed = feed.NewMemoryFeed(64)
		eventCache = cache.NewNoopEventCache()
	} else {
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

		eventRepo = repository.NewEventRepository(pool)
		userRepo = repository.NewUserRepository(pool)
		notificationRepo = repository.NewNotificationRepository(pool)

		notificationFeed, err = feed.NewRedisStreamFeed(rdb, "", nil)
		if err != nil {
			log.Fatalf("Failed to initialize notification feed: %v", err)
		}
		eventCache = cache.NewRedisEventCache(rdb, 5*time.Minute)
	}

	adminService := service.NewAdminService(
		cfg.Registry.OwnerID,
		config.DefaultEventNameConfig(),
		config.DefaultUsernameConfig(),
		notificationFeed,
	)
	eventService := service.NewEventService(eventRepo, eventCache, notificationFeed, adminService, cfg.Registry.SingleEventPerCaller)
	userService := service.NewUserService(userRepo, notificationFeed, adminService)

	notificationWorker := worker.NewNotificationWorker(notificationRepo, notificationFeed)
	if err := notificationWorker.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService, cfg.Registry.SingleEventPerCaller).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewAdminHandler(adminService).RegisterRoutes(router)
	handler.NewNotificationHandler(notificationRepo).RegisterRoutes(router)

	router.Run(":" + cfg.Server.Port)
}
