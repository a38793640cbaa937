// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/cart"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
	"github.com/prnse-cda/cda-store/internal/domain/checkout"
	"github.com/prnse-cda/cda-store/internal/domain/navigation"
	"github.com/prnse-cda/cda-store/internal/infrastructure/sheets"
	"github.com/prnse-cda/cda-store/internal/infrastructure/storage"
	httpserver "github.com/prnse-cda/cda-store/internal/interfaces/http"
	"github.com/prnse-cda/cda-store/internal/interfaces/http/routes"
	"github.com/prnse-cda/cda-store/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.WithField("environment", cfg.App.Environment).
		Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	// Connect to Redis
	redisClient, err := storage.NewRedisConnection(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		appLog.WithError(err).Fatal("Redis health check failed")
	}

	// Wire the storefront services
	sheetsClient := sheets.NewClient(cfg, appLog)
	cache := catalog.NewCache(sheetsClient, cfg, appLog)
	kv := storage.NewRedisKV(redisClient.GetClient())
	cartService := cart.NewService(kv, cache, cfg, appLog)
	checkoutService := checkout.NewService(cache, cfg, appLog)
	resolver := navigation.NewResolver(cache, cfg, appLog)

	// Warm the catalog in the background; requests arriving before the
	// first load completes trigger their own fetches.
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if products, err := cache.ListAll(warmCtx); err != nil {
			appLog.WithError(err).Warn("Catalog warm-up failed")
		} else {
			appLog.WithField("products", len(products)).Info("Catalog warmed")
		}
	}()

	server := httpserver.NewServer(cfg, redisClient.GetClient(), routes.Services{
		Catalog:  cache,
		Cart:     cartService,
		Checkout: checkoutService,
		Resolver: resolver,
		KV:       kv,
	}, appLog)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLog.Info("Server shutdown completed")
}
