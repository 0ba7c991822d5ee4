package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/techsolutions-api/internal/application/auth"
	"github.com/jhoicas/techsolutions-api/internal/application/catalog"
	"github.com/jhoicas/techsolutions-api/internal/infrastructure/metrics"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	Metrics        *metrics.Collector // nil: sin métricas por petición
}

// NewApp crea la app Fiber con el ErrorHandler de la API y los middlewares comunes:
// recover, request id, logging, métricas y CORS.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http")))
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
	}
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	AuthUC    *auth.AuthUseCase
	ProfileUC *auth.ProfileUseCase
	CatalogUC *catalog.CatalogUseCase
	Validator TokenValidator
	Gatherer  prometheus.Gatherer // nil: sin GET /metrics
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(deps.Gatherer)))
	}

	api := app.Group("/api")
	requireToken := AuthMiddleware(deps.Validator)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.ProfileUC, deps.Log.Named("auth"))
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/validate", requireToken, authHandler.Validate)
	authGroup.Get("/me", requireToken, authHandler.Me)

	// Catálogo: lectura pública, escritura con Bearer Token.
	services := api.Group("/services")
	serviceHandler := NewServiceHandler(deps.CatalogUC, deps.Log.Named("catalog"))
	services.Get("/", serviceHandler.List)
	services.Get("/search", serviceHandler.Search) // antes de /:id
	services.Get("/:id", serviceHandler.GetByID)
	services.Post("/", requireToken, serviceHandler.Create)
	services.Put("/:id", requireToken, serviceHandler.Update)
	services.Delete("/:id", requireToken, serviceHandler.Delete)
}
