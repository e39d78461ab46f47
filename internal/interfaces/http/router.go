package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/handy-sync/internal/application/auth"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Sync        SyncJobs
	SyncRuns    syncRunLister
	Settings    settingsService
	StockSubmit stockEntrySubmitter
	StockQuery  stockEntryReader
	Warehouses  warehouseService
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público; el alta de usuarios la hace un admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Handy (solo admin)
	handyGroup := protected.Group("/handy", adminOnly)
	handyHandler := NewHandyHandler(deps.Sync, deps.SyncRuns, deps.Settings)
	handyGroup.Post("/sync/customers", handyHandler.SyncCustomers)
	handyGroup.Post("/sync/products", handyHandler.SyncProducts)
	handyGroup.Post("/sync/price-lists", handyHandler.SyncPriceLists)
	handyGroup.Post("/sync/quantities", handyHandler.PushQuantities)
	handyGroup.Get("/sync-runs", handyHandler.ListRuns)
	handyGroup.Get("/settings", handyHandler.GetSettings)
	handyGroup.Put("/settings", handyHandler.SaveSettings)

	// Bodegas: alta solo admin, consulta admin y bodeguero
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	warehouseHandler := NewWarehouseHandler(deps.Warehouses)
	protected.Post("/warehouses", adminOnly, warehouseHandler.Create)
	protected.Get("/warehouses", stockRoles, warehouseHandler.List)

	// Documentos de stock (admin y bodeguero)
	stock := protected.Group("/stock-entries", stockRoles)
	stockHandler := NewStockEntryHandler(deps.StockSubmit, deps.StockQuery)
	stock.Post("/", stockHandler.Submit)
	stock.Get("/:id", stockHandler.GetByID)
}
