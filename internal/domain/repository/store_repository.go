package repository

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	// Create inserta la tienda; devuelve domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
}
