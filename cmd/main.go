package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cinebook/backend/internal/app"
	movieclient "github.com/cinebook/backend/internal/clients/movie"
	scheduleclient "github.com/cinebook/backend/internal/clients/schedule"
	userclient "github.com/cinebook/backend/internal/clients/user"
	"github.com/cinebook/backend/internal/gateway"
	httpserver "github.com/cinebook/backend/internal/http"
	httpH "github.com/cinebook/backend/internal/http/handlers"
	"github.com/cinebook/backend/internal/pkg/logger"
	"github.com/cinebook/backend/internal/services"
	"github.com/cinebook/backend/internal/storage"
	documentstore "github.com/cinebook/backend/internal/storage/document"
	filestore "github.com/cinebook/backend/internal/storage/file"
)

func main() {
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("Could not open storage backend", "backend", cfg.StorageBackend, "error", err)
	}
	log.Info("Storage backend ready", "backend", cfg.StorageBackend)

	if cfg.SeedFile != "" {
		n, err := storage.SeedIfEmpty(context.Background(), store, cfg.SeedFile)
		if err != nil {
			log.Warn("Seeding bookings failed", "file", cfg.SeedFile, "error", err)
		} else if n > 0 {
			log.Info("Seeded bookings", "file", cfg.SeedFile, "aggregates", n)
		}
	}

	timeout := time.Duration(cfg.CollaboratorTimeoutSec) * time.Second
	movies := movieclient.New(cfg.MovieServiceURL, timeout, log)
	schedules := scheduleclient.New(cfg.ScheduleServiceURL, timeout, log)
	users := userclient.New(cfg.UserServiceURL, timeout, log)

	roleTTL := time.Duration(cfg.RoleCacheTTLSec) * time.Second
	gw := gateway.New(movies, schedules, users, roleTTL, log)

	bookingService := services.NewBookingService(store, gw, log)

	server := httpserver.NewServer(httpserver.RouterConfig{
		BookingHandler: httpH.NewBookingHandler(bookingService),
		HealthHandler:  httpH.NewHealthHandler(),
		Log:            log,
	})

	log.Info("Booking service listening", "addr", cfg.HTTPAddr)
	if err := server.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("HTTP server stopped", "error", err)
	}
}

func openStore(cfg app.Config, log *logger.Logger) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "document":
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store := documentstore.New(db, log)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate bookings table: %w", err)
		}
		return store, nil
	case "file":
		return filestore.New(cfg.BookingsFile, log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
