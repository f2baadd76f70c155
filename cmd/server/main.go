// Package main is the entry point for the diary server. Its job is to read
// configuration, create the logger, and start the server; all actual logic
// lives in the internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfarouk/diary-server/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// A .env file is optional; real environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_DRIVER selects the store: "sqlite" (default, embedded) or "mysql"
	// (the networked deployment). DSN is the sqlite file path or the MySQL
	// connection string; database host and credentials stay outside this
	// program, supplied by whoever operates it.
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DSN")
	if dsn == "" {
		if driver != "sqlite" {
			logger.Error("DSN must be set when DB_DRIVER is not sqlite")
			os.Exit(1)
		}
		dsn = "data/diary.db"
	}

	if driver == "sqlite" && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dsn)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		logger.Error("SESSION_SECRET must be set (e.g. openssl rand -hex 32)")
		os.Exit(1)
	}

	ttl := 12 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		var err error
		ttl, err = time.ParseDuration(ttlStr)
		if err != nil {
			logger.Error("invalid SESSION_TTL value", slog.String("value", ttlStr))
			os.Exit(1)
		}
	}

	cfg := server.Config{
		Port:          port,
		DBDriver:      driver,
		DSN:           dsn,
		SessionSecret: secret,
		SessionTTL:    ttl,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
