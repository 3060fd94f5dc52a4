package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre SQLite.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Acepta *sql.DB o *sql.Tx.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create inserta la tienda; si el nombre ya existe devuelve domain.ErrDuplicate.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	res, err := r.q.ExecContext(ctx, `INSERT INTO stores (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, store.Name)
	if err != nil {
		return mapError("insert store", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("insert store", err)
	}
	if n == 0 {
		return fmt.Errorf("tienda %q: %w", store.Name, domain.ErrDuplicate)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError("insert store", err)
	}
	store.ID = id
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRowContext(ctx, `SELECT id, name FROM stores WHERE id = ?`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get store", err)
	}
	return &s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM stores ORDER BY name`)
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
