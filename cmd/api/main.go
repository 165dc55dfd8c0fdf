package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/manzapp/manz/backend/config"
	"github.com/manzapp/manz/backend/internal/api"
	"github.com/manzapp/manz/backend/internal/database"
	"github.com/manzapp/manz/backend/internal/router"
	"github.com/manzapp/manz/backend/internal/server"
	"github.com/manzapp/manz/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Starting in %s mode", cfg.Environment)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: rate limiting disabled: %v", err)
			redisClient = nil
		}
	}

	var imageService *service.ImageService
	if cfg.S3BucketName != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Printf("Warning: item image uploads disabled: %v", err)
		} else {
			imageService = service.NewImageService(s3Config)
		}
	}

	engine := router.SetupRouter(cfg, api.NewDependencies(db, cfg.TokenSecret, redisClient, imageService))
	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}
