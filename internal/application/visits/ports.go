package visits

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Una programación completa (proveedor + todas sus visitas) se confirma o se descarta entera.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		visitRepo repository.VisitRepository,
		supplierRepo repository.SupplierRepository,
		storeRepo repository.StoreRepository,
	) error) error
}
