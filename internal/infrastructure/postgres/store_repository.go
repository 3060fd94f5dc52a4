package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda y asigna su ID. Si el nombre ya existe devuelve domain.ErrDuplicate
// sin abortar la transacción en curso (ON CONFLICT DO NOTHING).
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `INSERT INTO stores (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`
	err := r.q.QueryRow(ctx, query, store.Name).Scan(&store.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("tienda %q: %w", store.Name, domain.ErrDuplicate)
		}
		return mapError("insert store", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, `SELECT id, name FROM stores WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get store", err)
	}
	return &s, nil
}

// List lista las tiendas por nombre.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM stores ORDER BY name`)
	if err != nil {
		return nil, mapError("list stores", err)
	}
	defer rows.Close()
	list := []*entity.Store{}
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, mapError("scan store", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list stores", err)
	}
	return list, nil
}
