package main

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"sched-os/backend/internal/api"
	"sched-os/backend/internal/audit"
	"sched-os/backend/internal/auth"
	"sched-os/backend/internal/storage"
	"sched-os/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var store storage.Store
	if cfg.Database.URL != "" {
		pg, err := storage.NewPostgresStore(cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer pg.Close()
		store = pg
	} else {
		log.Println("No database configured, using in-memory storage")
		store = storage.NewMemoryStore()
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		store = storage.NewRunCache(store, client)
	}

	authn := auth.New(cfg.Auth.JWTSecret, 24*time.Hour)
	if err := authn.AddUser(cfg.Auth.AdminUser, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	handlers := api.NewHandlers(store, authn)
	if cfg.Audit.LogPath != "" {
		auditLog, err := audit.NewFileLogger(cfg.Audit.LogPath)
		if err != nil {
			log.Fatal("Failed to open audit log:", err)
		}
		defer auditLog.Close()
		handlers.WithAudit(auditLog)
	}

	limiter := api.NewRateLimiter(api.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	})

	r := api.SetupRouter(handlers, limiter)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Scheduler API server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
