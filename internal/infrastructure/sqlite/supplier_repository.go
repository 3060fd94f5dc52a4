package sqlite

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre SQLite.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Acepta *sql.DB o *sql.Tx.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Upsert inserta o reutiliza el proveedor con UPSERT ... RETURNING (SQLite >= 3.35).
func (r *SupplierRepo) Upsert(ctx context.Context, name, nameKey string) (int64, error) {
	const query = `
		INSERT INTO suppliers (name, name_key)
		VALUES (?, ?)
		ON CONFLICT (name_key) DO UPDATE SET name_key = excluded.name_key
		RETURNING id`
	var id int64
	if err := r.q.QueryRowContext(ctx, query, name, nameKey).Scan(&id); err != nil {
		return 0, mapError("upsert supplier", err)
	}
	return id, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, name_key FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, mapError("list suppliers", err)
	}
	defer rows.Close()
	list := []*entity.Supplier{}
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.NameKey); err != nil {
			return nil, mapError("scan supplier", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list suppliers", err)
	}
	return list, nil
}
