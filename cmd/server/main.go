package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karkhana/internal/auth"
	"karkhana/internal/booking"
	"karkhana/internal/catalog"
	"karkhana/internal/checkout"
	"karkhana/internal/commons"
	"karkhana/internal/config"
	"karkhana/internal/infrastructure/logger"
	"karkhana/internal/infrastructure/mysql"
	"karkhana/internal/infrastructure/redis"
	"karkhana/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("redis connected")

	authCtrl, tokens := auth.NewModule(db, cfg.Auth, zapLogger)
	catalogCtrl := catalog.NewModule(db, zapLogger)
	bookingCtrl, _, _ := booking.NewModule(db, redisClient, cfg, zapLogger)
	checkoutCtrl := checkout.NewModule(db, cfg, zapLogger)

	router := server.NewRouter(server.Controllers{
		Auth:     authCtrl,
		Catalog:  catalogCtrl,
		Booking:  bookingCtrl,
		Checkout: checkoutCtrl,
		Tokens:   tokens,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
