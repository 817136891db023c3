package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/config"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/bootstrap"
	cronjob "github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/cron"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/llm"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/service"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
)

const serviceName = "ece-project-architect"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)
	service.SetLogLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{
		Kind: cfg.Session.Store,
		TTL:  cfg.Session.TTL,
		Redis: bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	})
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	log.Printf("session store: %s (ttl %s)", store.Name(), cfg.Session.TTL)

	model, err := llm.NewGemini(ctx, llm.GeminiOptions{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}
	log.Printf("gemini model: %s", model.ModelName())

	manager := workspace.NewManager(
		store,
		service.NewGenerationService(model),
		service.NewAnalysisService(model),
		workspace.Options{
			ProgressInterval: cfg.Session.ProgressInterval,
			IdleTTL:          cfg.Session.TTL,
		},
	)
	limiter := middleware.NewSessionLimiter(cfg.Limits.RateLimitPerMinute, cfg.Limits.RateLimitBurst)

	scheduler := cronjob.NewScheduler(cfg.Session.SweepSchedule,
		cronjob.Job{Name: "live_sessions", Run: func(ctx context.Context) (int, error) {
			return manager.Sweep(ctx), nil
		}},
		cronjob.Job{Name: "store", Run: store.Sweep},
		cronjob.Job{Name: "rate_limits", Run: func(context.Context) (int, error) {
			return limiter.Prune(cfg.Session.TTL), nil
		}},
	)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("cron: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:      serviceName,
		Version:          cfg.App.Version,
		Manager:          manager,
		Store:            store,
		Limiter:          limiter,
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		SecureCookies:    cfg.IsProduction(),
		MaxImageBytes:    cfg.Limits.MaxImageBytes,
		ProgressInterval: cfg.Session.ProgressInterval,
	})

	// No write timeout: generations and the progress stream outlive any fixed bound.
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[error] operation=serve error=%v", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down gracefully...")
	cancel()
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown error=%v", err)
	}
	if err := closeStore(); err != nil {
		log.Printf("[error] operation=close_store error=%v", err)
	}

	log.Println("stopped")
}
