package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/panaderia-api/docs"
	"github.com/jhoicas/panaderia-api/internal/application/auth"
	"github.com/jhoicas/panaderia-api/internal/application/dashboard"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/application/usecase"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/panaderia-api/internal/interfaces/http"
	"github.com/jhoicas/panaderia-api/pkg/config"
	"github.com/jhoicas/panaderia-api/pkg/logger"
	"github.com/jhoicas/panaderia-api/pkg/money"
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

	loc, err := time.LoadLocation(cfg.Dashboard.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Dashboard.Timezone).Msg("zona horaria inválida")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Eventos: hub local y, si hay REDIS_URL, difusión entre réplicas.
	hub := realtime.NewHub()
	var notifier ports.Notifier = hub
	if cfg.Realtime.RedisURL != "" {
		redisClient, err := realtime.NewRedisClient(ctx, cfg.Realtime.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		broker := realtime.NewRedisBroker(redisClient, cfg.Realtime.Channel, hub, log)
		if err := broker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("suscripción a Redis")
		}
		notifier = broker
		log.Info().Str("channel", cfg.Realtime.Channel).Msg("eventos vía Redis pub/sub")
	}

	userRepo := postgres.NewUserRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, notifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := dashboard.NewUseCase(userRepo, batchRepo, loc, money.NewFormatter(cfg.Dashboard.Currency), cfg.Dashboard.StockCardDefDays)
	batchUC := usecase.NewBatchUseCase(batchRepo, notifier, log, loc)
	userUC := usecase.NewUserUseCase(userRepo, notifier, log)
	supplyUC := inventory.NewSupplyUseCase(txRunner, supplyRepo, notifier, log)

	// Sin WriteTimeout: /api/events mantiene la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(cfg.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Panadería API",
	}))
	app.Use(helmet.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		BatchUC:     batchUC,
		UserUC:      userUC,
		SupplyUC:    supplyUC,
		Events:      hub,
		DB:          pool,
		ServiceName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
