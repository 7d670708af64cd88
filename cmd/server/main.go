package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"househand/backend/internal/cache"
	"househand/backend/internal/config"
	"househand/backend/internal/handlers"
	"househand/backend/internal/monitoring"
	"househand/backend/internal/repositories"
	"househand/backend/internal/services"
	"househand/backend/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	db, err := repositories.Connect(repositories.FromConfig(cfg))
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cache.ConfigFrom(cfg))
	if err := redisCache.Health(); err != nil {
		// Cache and queue degrade gracefully; the API itself stays up.
		log.Printf("redis unavailable at startup: %v", err)
	}
	defer redisCache.Close()

	queue := worker.NewJobQueue(redisCache.Client())
	notificationService := services.NewNotificationService()

	jobWorker := worker.NewWorker(worker.WorkerConfig{
		RedisClient:  redisCache.Client(),
		Queues:       cfg.Worker.Queues,
		PollInterval: cfg.Worker.PollInterval,
	})
	worker.RegisterNotificationHandler(jobWorker, db, notificationService)
	jobWorker.Start(cfg.Worker.Concurrency)
	defer jobWorker.Stop()

	viewService := services.NewViewService()
	cachedViews := services.NewCachedViewService(viewService, redisCache)

	health := monitoring.NewHealthChecker()
	health.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	health.Register("redis", func(ctx context.Context) error {
		return redisCache.Health()
	})

	router := handlers.NewRouter(cfg, handlers.Handlers{
		Auth: handlers.NewAuthHandler(db,
			services.NewAuthService(cfg.Auth),
			services.NewRegisterService(cfg.Auth.BCryptCost),
			cfg.Auth),
		Tasks:         handlers.NewTaskHandler(db, services.NewTaskService(queue), cachedViews, cachedViews),
		Bids:          handlers.NewBidHandler(db, services.NewBidService(queue), services.NewTaskService(queue), cachedViews),
		Payments:      handlers.NewPaymentHandler(db, services.NewPaymentService(redisCache, queue)),
		Reviews:       handlers.NewReviewHandler(db, services.NewReviewService()),
		Notifications: handlers.NewNotificationHandler(db, notificationService),
		Health:        health,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
