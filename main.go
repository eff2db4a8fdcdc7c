package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"smartfare/internal/booking"
	"smartfare/internal/booking/booking_api"
	bookingdb "smartfare/internal/booking/db"
	rediswrap "smartfare/internal/booking/redis"
	"smartfare/internal/bus"
	"smartfare/internal/bus/bus_api"
	busdb "smartfare/internal/bus/db"
	"smartfare/internal/config"
	"smartfare/internal/database/schema"
	"smartfare/internal/database/seed"
	"smartfare/internal/health"
	"smartfare/internal/kafka"
	"smartfare/internal/logger"
)

func verifyConnections(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*bun.DB, *redis.Client) {
	dsn := cfg.Database.DSN
	if dsn == "" {
		logger.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	logger.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Smart Fare booking service")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB, redisClient := verifyConnections(ctx, cfg, logger)
	defer bunDB.Close()
	defer redisClient.Close()

	if err := schema.Create(ctx, bunDB); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Schema creation failed: %v", err))
	}
	logger.Info("DATABASE", "Schema verified")

	if cfg.SeedData {
		if err := seed.Run(ctx, bunDB, logger); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Seeding failed: %v", err))
		}
	}

	var events booking.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{
			cfg.Kafka.Topics.BookingCreated,
			cfg.Kafka.Topics.PaymentCompleted,
		}); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
		events = producer
	} else {
		logger.Warn("KAFKA", "Kafka disabled, booking events will not be published")
	}

	bookingService := booking.NewBookingService(
		&bookingdb.DB{Bun: bunDB},
		rediswrap.NewRedis(redisClient, cfg.Redis.SeatLockTTL),
		events,
		logger,
	)
	busService := bus.NewBusService(&busdb.DB{Bun: bunDB}, logger)

	bookingHandler := &booking_api.Handler{BookingService: bookingService, Logger: logger}
	busHandler := &bus_api.Handler{BusService: busService, Logger: logger}
	healthHandler := &health.Handler{Bun: bunDB, Logger: logger}

	logger.Info("HTTP", "Setting up router")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", bookingHandler.CreateBooking)
			r.Get("/{bookingReference}", bookingHandler.GetBooking)
			r.Get("/passenger/{phone}", bookingHandler.GetBookingsByPhone)
			r.Post("/{bookingReference}/payment", bookingHandler.UpdatePayment)
			r.Get("/{bookingReference}/qr", bookingHandler.GetQRCode)
		})
		logger.Info("ROUTER", "Booking routes registered under /api/bookings")

		r.Route("/buses", func(r chi.Router) {
			r.Get("/locations", busHandler.GetAllLocations)
			r.Get("/locations/search", busHandler.SearchLocations)
			r.Get("/search", busHandler.SearchBuses)
			r.Get("/schedule/{scheduleId}", busHandler.GetSchedule)
		})
		logger.Info("ROUTER", "Bus routes registered under /api/buses")

		r.Route("/health", func(r chi.Router) {
			r.Get("/", healthHandler.Health)
			r.Get("/database", healthHandler.DatabaseHealth)
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Smart Fare service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		logger.Info("HTTP", "Smart Fare service shutdown complete")
	}
}
