package repository

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	// Upsert inserta el proveedor o devuelve el ID del existente con la misma clave, de forma atómica.
	Upsert(ctx context.Context, name, nameKey string) (int64, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}
