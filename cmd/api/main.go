package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/techsolutions-api/internal/application/auth"
	"github.com/jhoicas/techsolutions-api/internal/application/catalog"
	"github.com/jhoicas/techsolutions-api/internal/infrastructure/metrics"
	"github.com/jhoicas/techsolutions-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/techsolutions-api/internal/interfaces/http"
	"github.com/jhoicas/techsolutions-api/pkg/config"
	"github.com/jhoicas/techsolutions-api/pkg/jwt"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	jwtCfg := jwt.Config{
		Secret:     []byte(cfg.JWT.Secret),
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		ExpMinutes: cfg.JWT.Expiration,
	}
	issuer, err := jwt.NewIssuer(jwtCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("emisor de tokens")
	}
	validator, err := jwt.NewValidator(jwtCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("validador de tokens")
	}

	var (
		collector *metrics.Collector
		gatherer  prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.NewCollector(reg)
		gatherer = reg
	}

	userRepo := postgres.NewUserRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)

	var loginObserver auth.LoginObserver
	if collector != nil {
		loginObserver = collector
	}
	authUC := auth.NewAuthUseCase(userRepo, issuer, loginObserver)
	profileUC := auth.NewProfileUseCase(userRepo)
	catalogUC := catalog.NewCatalogUseCase(serviceRepo)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		Metrics:        collector,
	}, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		AuthUC:    authUC,
		ProfileUC: profileUC,
		CatalogUC: catalogUC,
		Validator: validator,
		Gatherer:  gatherer,
		Log:       log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
