package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lfc-estoque/internal/application/auth"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/application/usecase"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC             *auth.AuthUseCase
	ProductUC          *usecase.ProductUseCase
	ShelfUC            *usecase.ShelfUseCase
	StockUC            *inventory.StockUseCase
	APIKey             string
	LoginRatePerMinute int
	Log                *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api", APIKeyMiddleware(deps.APIKey))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginRateLimiter(deps.LoginRatePerMinute), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión activa)
	requireSession := AuthMiddleware(deps.AuthUC)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)
	authGroup.Post("/register", requireSession, authHandler.Register)

	products := api.Group("/products", requireSession)
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	shelves := api.Group("/shelves", requireSession)
	shelfHandler := NewShelfHandler(deps.ShelfUC, log)
	shelves.Get("/", shelfHandler.List)
	shelves.Post("/", shelfHandler.Create)
	shelves.Get("/:id", shelfHandler.GetByID)
	shelves.Put("/:id", shelfHandler.Update)
	shelves.Delete("/:id", shelfHandler.Delete)

	stockGroup := api.Group("/stock", requireSession)
	stockHandler := NewStockHandler(deps.StockUC, log)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/", stockHandler.Assign)
	stockGroup.Get("/report.pdf", stockHandler.Report)
	stockGroup.Post("/reconcile", stockHandler.Reconcile)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/products/:productId", stockHandler.ByProduct)
	stockGroup.Post("/:id/withdraw", stockHandler.Withdraw)
}
