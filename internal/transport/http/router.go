package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/taskapi/backend/internal/config"
	"github.com/taskapi/backend/internal/core/services"
	"github.com/taskapi/backend/internal/infrastructure/db"
	"github.com/taskapi/backend/internal/infrastructure/logger"
	"github.com/taskapi/backend/internal/transport/http/dto"
	"github.com/taskapi/backend/internal/transport/http/handlers"
	httpmw "github.com/taskapi/backend/internal/transport/http/middleware"
)

type RouterConfig struct {
	Store  *db.Handle
	Logger *logger.Logger
	Config *config.Config
}

// NewApp builds the fiber application with global middleware and all routes
// mounted.
func NewApp(cfg RouterConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Config.Server.ReadTimeout,
		WriteTimeout:          cfg.Config.Server.WriteTimeout,
		IdleTimeout:           cfg.Config.Server.IdleTimeout,
		ErrorHandler:          globalErrorHandler(cfg.Logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	allowedOrigins := "*"
	if len(cfg.Config.CORS.AllowedOrigins) > 0 {
		allowedOrigins = strings.Join(cfg.Config.CORS.AllowedOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + cfg.Config.Features.RequestIDHeader,
		AllowMethods: "GET, POST, HEAD, PUT, PATCH, DELETE",
	}))

	app.Use(httpmw.RequestID(cfg.Config.Features.RequestIDHeader))
	if cfg.Config.Features.EnableRequestLogging {
		app.Use(httpmw.AccessLog(cfg.Logger))
	}

	SetupRoutes(app, cfg)
	return app
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository: cfg.Store.Tasks,
		Logger:     cfg.Logger,
	})

	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.Store, cfg.Logger)

	app.Get("/health", healthHandler.Check)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", taskHandler.GetTasks)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Put("/:id", taskHandler.UpdateTask)
	tasks.Patch("/:id", taskHandler.UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)
}

func globalErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code < fiber.StatusInternalServerError {
			log.Warnw("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", httpmw.GetRequestID(c),
			)
		} else {
			log.Errorw("request error",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", httpmw.GetRequestID(c),
			)
		}

		return c.Status(code).JSON(dto.Fail(message))
	}
}
