package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/liamba05/Fynnance/internal/api"
	"github.com/liamba05/Fynnance/internal/cache"
	"github.com/liamba05/Fynnance/internal/config"
	"github.com/liamba05/Fynnance/internal/database"
	"github.com/liamba05/Fynnance/internal/encryption"
	"github.com/liamba05/Fynnance/internal/plaid"
	"github.com/liamba05/Fynnance/internal/quota"
	"github.com/liamba05/Fynnance/internal/rentcast"
	"github.com/liamba05/Fynnance/internal/repository"
	"github.com/liamba05/Fynnance/internal/scheduler"
	"github.com/liamba05/Fynnance/internal/service"
	"github.com/liamba05/Fynnance/internal/yahoo"
)

// RentCast bills per calendar month; a 30 day window approximates it.
const rentcastQuotaWindow = 30 * 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	version, err := database.Migrate(context.Background(), db)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Printf("Database schema at version %d", version)

	cipher := newCipher(cfg.Encryption.Keys)

	// Create repositories and services
	userFactsRepo := repository.NewUserFactsRepository(db, cipher)
	userFactsService := service.NewUserFactsService(userFactsRepo)

	profileService := newProfileService(cfg)

	sessions := cache.NewSessionRegistry(cfg.Cache.SessionTTL, cfg.Cache.MaxEntries)
	marketService, closeLimiter := newMarketService(cfg, sessions, userFactsService)
	defer closeLimiter()

	systemService := service.NewSystemService(db, map[string]bool{
		"plaid":    profileService != nil,
		"rentcast": marketService != nil,
		"redis":    cfg.Redis.Addr != "",
	})

	sweeper, err := scheduler.New(cfg.Cache.SweepSchedule, sessions)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sweeper.Start()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		UserFacts: userFactsService,
		Profile:   profileService,
		Market:    marketService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-sweeper.Stop().Done()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newCipher builds the field cipher. Without configured keys an ephemeral key is
// generated, and facts written with it cannot be read after a restart.
func newCipher(keys string) *encryption.FieldCipher {
	if keys == "" {
		generated, err := encryption.GenerateKey()
		if err != nil {
			log.Fatalf("Failed to generate encryption key: %v", err)
		}
		log.Printf("WARNING: FERNET_KEYS is not set, using an ephemeral key. Stored facts will be unreadable after restart.")
		keys = generated
	}

	cipher, err := encryption.NewFieldCipher(keys)
	if err != nil {
		log.Fatalf("Failed to create field cipher: %v", err)
	}
	return cipher
}

// newProfileService returns nil when Plaid is not configured.
func newProfileService(cfg *config.Config) *service.ProfileService {
	if !cfg.Plaid.Enabled() {
		log.Println("Plaid is not configured; profile endpoints are disabled")
		return nil
	}

	client := plaid.NewHTTPClient(cfg.Plaid.BaseURL, cfg.Plaid.ClientID, cfg.Plaid.Secret, cfg.Plaid.Timeout)
	source := plaid.NewDataSource(client, plaid.StaticTokenSource{Token: cfg.Plaid.AccessToken})
	quotes := yahoo.NewFinanceClient(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout)
	return service.NewProfileService(source, quotes)
}

// newMarketService returns nil when RentCast is not configured. The returned
// func releases the quota backend.
func newMarketService(cfg *config.Config, sessions *cache.SessionRegistry, facts service.FactsReader) (*service.MarketService, func()) {
	if !cfg.RentCast.Enabled() {
		log.Println("RentCast is not configured; market endpoints are disabled")
		return nil, func() {}
	}

	var limiter quota.Limiter
	closeLimiter := func() {}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Printf("RentCast quota counted in redis at %s", cfg.Redis.Addr)
		limiter = quota.NewRedisLimiter(rdb, cfg.RentCast.MonthlyQuota, rentcastQuotaWindow)
		closeLimiter = func() {
			if err := rdb.Close(); err != nil {
				log.Printf("Failed to close redis client: %v", err)
			}
		}
	} else {
		limiter = quota.NewMemoryLimiter(cfg.RentCast.MonthlyQuota, rentcastQuotaWindow)
	}

	client := rentcast.NewHTTPClient(cfg.RentCast.BaseURL, cfg.RentCast.APIKey, cfg.RentCast.Timeout)
	return service.NewMarketService(client, sessions, limiter, facts), closeLimiter
}
