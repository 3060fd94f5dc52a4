package repository

import (
	"context"
	"time"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
)

// VisitFilter criterios de listado. Los campos nil o vacíos no restringen.
// El rango de fechas es inclusivo en ambos extremos.
type VisitFilter struct {
	StoreID   *int64
	Statuses  []string
	DateStart *time.Time
	DateEnd   *time.Time
}

// VisitKey identifica visitas duplicadas de una misma programación.
type VisitKey struct {
	StoreID    int64
	VisitDate  time.Time
	Buyer      string
	SupplierID int64
	Segment    string
}

// VisitRepository define el puerto de persistencia para Visit.
// GetByID y GetByIDForUpdate devuelven (nil, nil) si la visita no existe.
type VisitRepository interface {
	// Create persiste la visita y asigna visit.ID.
	Create(ctx context.Context, visit *entity.Visit) error
	GetByID(ctx context.Context, id int64) (*entity.Visit, error)
	// GetByIDForUpdate lee la visita bloqueando la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Visit, error)
	GetView(ctx context.Context, id int64) (*entity.VisitView, error)
	// UpdateDetails escribe solo los campos descriptivos.
	UpdateDetails(ctx context.Context, visit *entity.Visit) error
	// UpdateLifecycle escribe estado, datos de cierre, reapertura y comentario.
	UpdateLifecycle(ctx context.Context, visit *entity.Visit) error
	// Delete borra la visita; devuelve domain.ErrNotFound si no existía.
	Delete(ctx context.Context, id int64) error
	// List devuelve las visitas ordenadas por fecha y luego por ID, ascendente.
	List(ctx context.Context, filter VisitFilter) ([]*entity.VisitView, error)
	ExistsByKey(ctx context.Context, key VisitKey) (bool, error)
}
