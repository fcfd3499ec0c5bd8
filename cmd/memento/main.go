package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/memento/internal/api"
	"github.com/terraincognita07/memento/internal/config"
	"github.com/terraincognita07/memento/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg := config.Load()

	for _, dir := range []string{cfg.OriginalsDir(), cfg.ThumbnailsDir(), cfg.AvatarsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("upload dir init failed: %v", err)
		}
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, cfg)

	created, err := handler.EnsureDefaultAdmin()
	if err != nil {
		log.Fatalf("default admin init failed: %v", err)
	}
	if created {
		log.Printf("created default admin %q, change its password", cfg.DefaultAdminUsername)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Memento",
		DisableStartupMessage: true,
		BodyLimit:             int(cfg.MaxImageBytes()) * 4,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	app.Static("/static", cfg.UploadDir)
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Memento listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
