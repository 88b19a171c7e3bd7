package main

import (
	"log"
	"log/slog"
	"os"

	"guestbook/internal/config"
	"guestbook/internal/db"
	"guestbook/internal/logging"
	"guestbook/internal/metrics"
	"guestbook/internal/middleware"
	"guestbook/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.MustLoad()

	logger := logging.New(cfg.Env)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.Session.DefaultSecret() {
			logger.Warn("SESSION_SECRET is not set, using the development default")
		}
	}

	// Initialize Database
	database, err := db.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", logging.Err(err))
		os.Exit(1)
	}
	if err := db.Migrate(database); err != nil {
		logger.Error("failed to migrate database", logging.Err(err))
		os.Exit(1)
	}

	r, err := router.New(router.Deps{
		DB:            database,
		Logger:        logger,
		Metrics:       metrics.New(prometheus.NewRegistry()),
		SessionStore:  middleware.NewSessionStore(cfg.Session, cfg.IsProduction(), database),
		SessionName:   cfg.Session.Name,
		ShowErrors:    !cfg.IsProduction(),
		RedirectDelay: cfg.RedirectDelay,
	})
	if err != nil {
		logger.Error("failed to build router", logging.Err(err))
		os.Exit(1)
	}

	logger.Info("guestbook server starting", slog.String("addr", cfg.Addr()), slog.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server stopped", logging.Err(err))
		os.Exit(1)
	}
}
