package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visitas-api/internal/application/auth"
	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/application/visits"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	StoreUC    *usecase.StoreUseCase
	SupplierUC *usecase.SupplierUseCase
	VisitsUC   *visits.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
// El alcance por tienda del rol loja lo resuelve el caso de uso; aquí solo se filtra por rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	comercial := RequireRole(entity.RoleComercial)

	directory := NewDirectoryHandler(deps.StoreUC, deps.SupplierUC)
	protected.Get("/stores", directory.ListStores)
	protected.Get("/suppliers", directory.ListSuppliers)
	protected.Post("/suppliers", comercial, directory.UpsertSupplier)

	visitHandler := NewVisitHandler(deps.VisitsUC)
	v := protected.Group("/visits")
	v.Get("/", visitHandler.List)
	v.Post("/", comercial, visitHandler.Schedule)
	v.Get("/:id", visitHandler.GetByID)
	v.Put("/:id", comercial, visitHandler.Update)
	v.Delete("/:id", comercial, visitHandler.Delete)
	v.Post("/:id/complete", visitHandler.Complete)
	v.Post("/:id/no-show", visitHandler.MarkNoShow)
	v.Post("/:id/reopen", visitHandler.Reopen)
	v.Post("/:id/comment", visitHandler.Comment)
}
