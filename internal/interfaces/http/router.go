package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comprint/mualish-plus-api/internal/application/auth"
	"github.com/comprint/mualish-plus-api/internal/application/inventory"
	"github.com/comprint/mualish-plus-api/internal/application/sales"
	"github.com/comprint/mualish-plus-api/internal/application/service"
	"github.com/comprint/mualish-plus-api/internal/application/usecase"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	BranchUC     *usecase.BranchUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *usecase.CustomerUseCase
	InventoryUC  *inventory.UseCase
	CreateSale   *sales.CreateSaleUseCase
	SaleUC       *sales.UseCase
	CommissionUC *sales.CommissionUseCase
	ServiceUC    *service.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (protegido, solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Post("/:id/toggle-status", userHandler.ToggleStatus)
	users.Delete("/:id", userHandler.Delete)

	// Branches (protegido; escritura solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Patch("/:id/adjust-stock", inventoryHandler.AdjustStock)
	invGroup.Put("/:id", inventoryHandler.Update)
	invGroup.Delete("/:id", inventoryHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Commissions (protegido; reparación solo admin)
	commissions := protected.Group("/commissions")
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	commissions.Get("/", commissionHandler.List)
	commissions.Get("/reports", commissionHandler.Report)
	commissions.Post("/repair", adminOnly, commissionHandler.Repair)
	commissions.Get("/:id", commissionHandler.GetByID)
	commissions.Patch("/:id", adminOnly, commissionHandler.Update)

	// Service requests (protegido; el control fino de campos vive en el usecase)
	serviceRequests := protected.Group("/service-requests")
	serviceHandler := NewServiceRequestHandler(deps.ServiceUC)
	serviceRequests.Post("/", serviceHandler.Create)
	serviceRequests.Get("/", serviceHandler.List)
	serviceRequests.Get("/:id", serviceHandler.GetByID)
	serviceRequests.Patch("/:id", serviceHandler.Update)
	serviceRequests.Delete("/:id", adminOnly, serviceHandler.Delete)
	serviceRequests.Post("/:id/attachments", serviceHandler.UploadAttachment)
	serviceRequests.Get("/:id/attachments", serviceHandler.ListAttachments)
	serviceRequests.Delete("/:id/attachments/:attachmentId", serviceHandler.DeleteAttachment)
	serviceRequests.Post("/:id/updates", serviceHandler.CreateUpdate)
	serviceRequests.Get("/:id/updates", serviceHandler.ListUpdates)
}
