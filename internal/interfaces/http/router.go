package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/auth"
	"github.com/estoquepro/estoque-api/internal/application/movements"
	"github.com/estoquepro/estoque-api/internal/application/usecase"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/infrastructure/pdf"
	"github.com/estoquepro/estoque-api/internal/infrastructure/xmlexport"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	Movements *movements.Service
	Reporter  *pdf.MovementReportGenerator
	Exporter  *xmlexport.MovementExporter
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Movimentos pendentes (protegido). As rotas de revisão levam o
	// RequireRole por rota, pois o grupo inteiro fica no mesmo prefixo
	// das rotas do entregador.
	movGroup := protected.Group("/movements/pending")
	movHandler := NewMovementHandler(deps.Movements, deps.Reporter, deps.Exporter)
	movGroup.Post("/", movHandler.Submit)
	movGroup.Get("/", movHandler.ListMine)

	reviewOnly := RequireRole(entity.RoleAdmin, entity.RoleGestor)
	movGroup.Get("/admin", reviewOnly, movHandler.ListAll)
	movGroup.Get("/admin/report", reviewOnly, movHandler.Report)
	movGroup.Get("/admin/export", reviewOnly, movHandler.Export)
	movGroup.Post("/:id/confirm", reviewOnly, movHandler.Confirm)
	movGroup.Put("/:id/edit", reviewOnly, movHandler.Edit)
	movGroup.Post("/:id/reject", reviewOnly, movHandler.Reject)
}
