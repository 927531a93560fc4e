package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"restaurant/cmd"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to assemble server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Start(ctx); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	app.Stop(shutdownCtx)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		TCPPort:      envOr("TCP_PORT", "5000"),
		HTTPPort:     envOr("HTTP_PORT", "8080"),
		DataFile:     envOr("DATA_FILE", "description.txt"),
		TransitScale: time.Duration(envIntOr("TRANSIT_SCALE_MS", 1000)) * time.Millisecond,
		CookMin:      time.Duration(envIntOr("COOK_MIN_S", 20)) * time.Second,
		CookMax:      time.Duration(envIntOr("COOK_MAX_S", 60)) * time.Second,
		AutosaveCron: envOr("AUTOSAVE_CRON", "*/30 * * * * *"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       envOr("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBSslMode:    envOr("DB_SSLMODE", "disable"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warnf("Invalid value for %s: %q, using default", key, raw)
		return fallback
	}
	return value
}
