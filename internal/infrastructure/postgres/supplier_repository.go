package postgres

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Upsert inserta o reutiliza el proveedor en una sola sentencia.
// El DO UPDATE no cambia nada, pero hace que RETURNING devuelva el ID de la fila existente.
func (r *SupplierRepo) Upsert(ctx context.Context, name, nameKey string) (int64, error) {
	const query = `
		INSERT INTO suppliers (name, name_key)
		VALUES ($1, $2)
		ON CONFLICT (name_key) DO UPDATE SET name_key = EXCLUDED.name_key
		RETURNING id`
	var id int64
	if err := r.q.QueryRow(ctx, query, name, nameKey).Scan(&id); err != nil {
		return 0, mapError("upsert supplier", err)
	}
	return id, nil
}

// List lista los proveedores por nombre.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, name_key FROM suppliers ORDER BY name`)
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
