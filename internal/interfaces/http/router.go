package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/auth"
	"github.com/jhoicas/panaderia-api/internal/application/dashboard"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/application/usecase"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// Pinger lo implementa *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DashboardUC *dashboard.UseCase
	BatchUC     *usecase.BatchUseCase
	UserUC      *usecase.UserUseCase
	SupplyUC    *inventory.SupplyUseCase
	Events      eventSubscriber
	DB          Pinger
	ServiceName string
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.ServiceName, deps.DB))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/me", dashboardHandler.GetMe)
	protected.Get("/dashboard", dashboardHandler.GetDashboard)
	protected.Get("/stock-card", dashboardHandler.GetStockCard)

	// Lotes y ventas
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Get("/", batchHandler.List)
	batches.Post("/", batchHandler.Create)
	batches.Delete("/:id", adminOnly, batchHandler.Delete)
	batches.Patch("/:id/date", batchHandler.UpdateDate)
	batches.Post("/:id/sales", batchHandler.CreateSale)
	batches.Patch("/:id/sales/:saleId", batchHandler.UpdateSale)
	batches.Delete("/:id/sales/:saleId", batchHandler.DeleteSale)

	// Usuarios (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/pending", userHandler.ListPending)
	users.Get("/active", userHandler.ListActive)
	users.Post("/", userHandler.Create)
	users.Patch("/:id/approve", userHandler.Approve)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Insumos
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.SupplyUC)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Patch("/:id", inventoryHandler.ApplyChange)
	inv.Delete("/:id", inventoryHandler.Delete)
	inv.Get("/:id/logs", inventoryHandler.Logs)

	if deps.Events != nil {
		protected.Get("/events", NewEventsHandler(deps.Events, 0).Stream)
	}
}

// healthHandler responde 503 si la base no contesta.
func healthHandler(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service, "db": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
