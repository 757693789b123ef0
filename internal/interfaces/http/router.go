package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/preorder"
	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/application/report"
	"github.com/jhoicas/emart-api/internal/application/tasks"
	"github.com/jhoicas/emart-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	ProductRequestUC *usecase.ProductRequestUseCase
	ProductLogUC     *usecase.ProductLogUseCase
	PurchaseUC       *purchase.UseCase
	PreorderUC       *preorder.UseCase
	TaskUC           *tasks.UseCase
	ReportUC         *report.UseCase
	JWTSecret        string
	JWTIssuer        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", IdentityMiddleware(deps.JWTSecret, deps.JWTIssuer))

	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/status", userHandler.UpdateStatus)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/balance/add", userHandler.AddBalance)
	users.Post("/:id/balance/deduct", userHandler.DeductBalance)
	api.Get("/leaderboard", userHandler.Leaderboard)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/quantity", productHandler.SetQuantity)
	products.Delete("/:id", productHandler.Delete)

	txHandler := NewTransactionHandler(deps.PurchaseUC)
	transactions := api.Group("/transactions")
	transactions.Post("/", txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Delete("/:id", txHandler.Delete)

	preorderHandler := NewPreorderHandler(deps.PreorderUC)
	preorders := api.Group("/preorders")
	preorders.Post("/", preorderHandler.Create)
	preorders.Get("/", preorderHandler.List)
	preorders.Get("/:id", preorderHandler.GetByID)
	preorders.Put("/:id/quantity", preorderHandler.UpdateQuantity)
	preorders.Patch("/:id/status", preorderHandler.UpdateStatus)
	preorders.Delete("/:id", preorderHandler.Delete)

	taskHandler := NewTaskHandler(deps.TaskUC)
	taskGroup := api.Group("/tasks")
	taskGroup.Post("/", taskHandler.Create)
	taskGroup.Get("/", taskHandler.List)
	taskGroup.Get("/:id", taskHandler.GetByID)
	taskGroup.Put("/:id", taskHandler.Update)
	taskGroup.Delete("/:id", taskHandler.Delete)
	taskGroup.Post("/:id/contributors", taskHandler.AddContributor)
	taskGroup.Delete("/:id/contributors/:user_id", taskHandler.RemoveContributor)
	taskGroup.Patch("/:id/contributors/:user_id/status", taskHandler.SetContributorStatus)
	taskGroup.Post("/:id/close", taskHandler.Close)
	taskGroup.Post("/:id/process", taskHandler.Process)

	requestHandler := NewProductRequestHandler(deps.ProductRequestUC)
	requests := api.Group("/product-requests")
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Delete("/:id", requestHandler.Delete)

	logHandler := NewProductLogHandler(deps.ProductLogUC)
	api.Get("/product-logs", logHandler.List)

	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports/:type", reportHandler.Get)
}
