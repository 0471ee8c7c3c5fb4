package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/augustpm/backend/internal/config"
	"github.com/augustpm/backend/internal/infrastructure/db"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	transporthttp "github.com/augustpm/backend/internal/transport/http"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "../config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	database, err := db.NewSQLiteConnection(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	log.Infow("database opened", "path", cfg.Database.Path)

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Info("database migrations completed")

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		ErrorHandler:          globalErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD, PUT, DELETE, PATCH",
	}))

	app.Use(func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals("request_id", reqID)
		return c.Next()
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	services := transporthttp.SetupRoutes(app, transporthttp.RouterConfig{
		DB:     database,
		Logger: log,
		Config: cfg,
	})

	stopSchedulers := startSchedulers(cfg, services, log)

	go func() {
		if err := app.Listen(cfg.Server.Address()); err != nil {
			log.Fatalf("server failed to start: %v", err)
		}
	}()
	log.Infow("server started", "address", cfg.Server.Address())

	gracefulShutdown(app, database, stopSchedulers, log)
}

// startSchedulers runs the background loops the chat layer used to drive:
// periodic board reconciliation and the blocked/stale-P0 checks. Both are
// best-effort; a failed round is logged and the next tick tries again.
func startSchedulers(cfg *config.Config, services transporthttp.Services, log *logger.Logger) func() {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Scheduler.EnableSync {
		go func() {
			ticker := time.NewTicker(cfg.Scheduler.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					res := services.Sync.SyncFromRemote(ctx)
					log.Infow("scheduled_sync_done",
						"fetched", res.Fetched, "created", res.Created,
						"skipped", res.Skipped, "errors", res.Errors)
				}
			}
		}()
	}

	if cfg.Scheduler.EnableAlerts {
		go func() {
			ticker := time.NewTicker(cfg.Scheduler.AlertInterval)
			defer ticker.Stop()
			lastCheck := time.Now()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					blocked, err := services.Report.RecentlyBlocked(ctx, lastCheck)
					if err != nil {
						log.Warnw("blocked_check_failed", "error", err)
					} else {
						for _, task := range blocked {
							log.Warnw("task_blocked_alert", "id", task.ID, "title", task.Title, "agent", task.Agent)
						}
					}

					stale, err := services.Report.StaleCritical(ctx, cfg.Scheduler.StaleThreshold)
					if err != nil {
						log.Warnw("stale_p0_check_failed", "error", err)
					} else {
						for _, task := range stale {
							log.Warnw("stale_p0_alert", "id", task.ID, "title", task.Title, "agent", task.Agent)
						}
					}

					lastCheck = time.Now()
				}
			}
		}()
	}

	return cancel
}

func globalErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code == fiber.StatusNotFound {
			log.Warnw("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", c.Locals("request_id"),
			)
		} else {
			log.Errorw("request error",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", c.Locals("request_id"),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, database *gorm.DB, stopSchedulers func(), log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server...")

	stopSchedulers()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	if err := db.Close(database); err != nil {
		log.Errorf("failed to close database connection: %v", err)
	}

	log.Info("server exited gracefully")
}
