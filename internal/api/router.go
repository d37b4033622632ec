package api

import (
	"time"

	"admitiq/docs"
	"admitiq/internal/api/handlers"
	"admitiq/pkg/auth"
	"admitiq/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RequestLogging enables fiber's access log middleware.
	RequestLogging bool
}

func SetupRouter(
	sessionHandler *handlers.SessionHandler,
	chatHandler *handlers.ChatHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
	cfg RouterConfig,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if cfg.RequestLogging {
		app.Use(logger.New())
	}

	// Importing docs registers the swagger spec through its init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", knowledgeHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Public
	api.Post("/sessions", sessionHandler.CreateSession)

	// Session-scoped
	requireSession := middleware.SessionMiddleware(jwtManager, appLogger)
	api.Post("/chat", requireSession, chatHandler.SendMessage)
	api.Post("/match", requireSession, knowledgeHandler.Match)
	api.Get("/knowledge", requireSession, knowledgeHandler.ListKnowledge)

	return app
}
