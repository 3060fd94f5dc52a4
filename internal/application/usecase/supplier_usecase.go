package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

// SupplierUseCase alta idempotente y listado de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Upsert devuelve el ID del proveedor, creándolo si su nombre normalizado no existe.
// "Acme" y " acme " resuelven al mismo ID.
func (uc *SupplierUseCase) Upsert(ctx context.Context, actor entity.Actor, name string) (int64, error) {
	if !actor.IsComercial() {
		return 0, fmt.Errorf("%w: operación reservada al rol comercial", domain.ErrForbidden)
	}
	clean := schedule.CleanName(name)
	if clean == "" {
		return 0, fmt.Errorf("%w: el nombre del proveedor es obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.Upsert(ctx, clean, schedule.SupplierKey(clean))
}

// List lista los proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.repo.List(ctx)
}
