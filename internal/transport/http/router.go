package http

import (
	"github.com/augustpm/backend/internal/config"
	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/core/services"
	"github.com/augustpm/backend/internal/infrastructure/db"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/augustpm/backend/internal/infrastructure/remote"
	"github.com/augustpm/backend/internal/transport/http/handlers"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

// Services exposes the wired core to the caller so schedulers in main can
// share the exact instances the HTTP surface uses.
type Services struct {
	Tasks  ports.TaskService
	Sync   ports.SyncService
	Report ports.ReportService
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) Services {
	// Initialize repositories
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	historyRepo := db.NewHistoryRepository(cfg.DB, cfg.Logger)

	// Initialize services
	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository: taskRepo,
		History:    historyRepo,
		Logger:     cfg.Logger,
	})

	kanbanClient := remote.NewKanbanClient(remote.KanbanClientConfig{
		BaseURL:   cfg.Config.Kanban.BaseURL,
		ProjectID: cfg.Config.Kanban.ProjectID,
		Timeout:   cfg.Config.Kanban.Timeout,
		Logger:    cfg.Logger,
	})

	syncService := services.NewSyncService(services.SyncServiceConfig{
		Client:        kanbanClient,
		Tasks:         taskService,
		FallbackAgent: cfg.Config.Kanban.FallbackAgent,
		Logger:        cfg.Logger,
	})

	reportService := services.NewReportService(taskService, cfg.Logger)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	syncHandler := handlers.NewSyncHandler(syncService, cfg.Logger)
	reportHandler := handlers.NewReportHandler(reportService, cfg.Logger)

	api := app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/", taskHandler.GetTasks)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Patch("/:id/state", taskHandler.UpdateTaskState)
	tasks.Delete("/:id", taskHandler.DeleteTask)
	tasks.Get("/:id/history", taskHandler.GetTaskHistory)

	reports := api.Group("/reports")
	reports.Get("/workload", reportHandler.GetWorkload)
	reports.Get("/standup", reportHandler.GetStandup)

	api.Get("/agents", reportHandler.GetAgents)

	sync := api.Group("/sync")
	sync.Post("/pull", syncHandler.Pull)
	sync.Post("/push", syncHandler.Push)
	sync.Get("/status", syncHandler.Status)

	return Services{
		Tasks:  taskService,
		Sync:   syncService,
		Report: reportService,
	}
}
