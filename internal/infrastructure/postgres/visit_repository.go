package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación de VisitRepository (usable con pool o tx).
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

const visitColumns = `
	v.id, v.store_id, v.visit_date, v.weekday, v.kind, v.buyer, v.supplier_id, v.segment,
	v.warranty, v.info, v.status, v.created_by, v.created_at, v.completed_by, v.completed_at,
	v.manager_comment, v.reopened_by, v.reopened_at`

const visitViewQuery = `
	SELECT ` + visitColumns + `,
	       s.name, sup.name, COALESCE(cu.name, ''), COALESCE(cb.name, '')
	FROM visits v
	JOIN stores    s   ON s.id   = v.store_id
	JOIN suppliers sup ON sup.id = v.supplier_id
	LEFT JOIN users cu ON cu.id  = v.created_by
	LEFT JOIN users cb ON cb.id  = v.completed_by`

func visitDest(v *entity.Visit) []any {
	return []any{
		&v.ID, &v.StoreID, &v.VisitDate, &v.Weekday, &v.Kind, &v.Buyer, &v.SupplierID, &v.Segment,
		&v.Warranty, &v.Info, &v.Status, &v.CreatedBy, &v.CreatedAt, &v.CompletedBy, &v.CompletedAt,
		&v.ManagerComment, &v.ReopenedBy, &v.ReopenedAt,
	}
}

func viewDest(vv *entity.VisitView) []any {
	return append(visitDest(&vv.Visit), &vv.StoreName, &vv.SupplierName, &vv.CreatedByName, &vv.CompletedByName)
}

// Create persiste una visita nueva y asigna su ID.
func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	query := `
		INSERT INTO visits (store_id, visit_date, weekday, kind, buyer, supplier_id, segment,
		                    warranty, info, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		v.StoreID, v.VisitDate, v.Weekday, v.Kind, v.Buyer, v.SupplierID, v.Segment,
		v.Warranty, v.Info, v.Status, v.CreatedBy, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return mapError("insert visit", err)
	}
	return nil
}

// GetByID obtiene una visita por ID.
func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*entity.Visit, error) {
	return r.getOne(ctx, `SELECT `+visitColumns+` FROM visits v WHERE v.id = $1`, id)
}

// GetByIDForUpdate obtiene la visita con bloqueo de fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *VisitRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Visit, error) {
	return r.getOne(ctx, `SELECT `+visitColumns+` FROM visits v WHERE v.id = $1 FOR UPDATE`, id)
}

func (r *VisitRepo) getOne(ctx context.Context, query string, id int64) (*entity.Visit, error) {
	var v entity.Visit
	if err := r.q.QueryRow(ctx, query, id).Scan(visitDest(&v)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get visit", err)
	}
	return &v, nil
}

// GetView obtiene una visita con los nombres de tienda, proveedor y usuarios.
func (r *VisitRepo) GetView(ctx context.Context, id int64) (*entity.VisitView, error) {
	var vv entity.VisitView
	if err := r.q.QueryRow(ctx, visitViewQuery+` WHERE v.id = $1`, id).Scan(viewDest(&vv)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get visit view", err)
	}
	return &vv, nil
}

// UpdateDetails actualiza los campos descriptivos; nunca toca estado ni fechas.
func (r *VisitRepo) UpdateDetails(ctx context.Context, v *entity.Visit) error {
	query := `
		UPDATE visits SET buyer = $2, supplier_id = $3, segment = $4, warranty = $5, info = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, v.ID, v.Buyer, v.SupplierID, v.Segment, v.Warranty, v.Info)
	if err != nil {
		return mapError("update visit", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update visit %d: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateLifecycle persiste el estado y los datos de cierre/reapertura.
func (r *VisitRepo) UpdateLifecycle(ctx context.Context, v *entity.Visit) error {
	query := `
		UPDATE visits SET status = $2, completed_by = $3, completed_at = $4, manager_comment = $5,
		                  reopened_by = $6, reopened_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Status, v.CompletedBy, v.CompletedAt, v.ManagerComment, v.ReopenedBy, v.ReopenedAt,
	)
	if err != nil {
		return mapError("update visit status", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update visit status %d: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina una visita por ID.
func (r *VisitRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return mapError("delete visit", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete visit %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista visitas según el filtro, por fecha ascendente y luego por ID.
func (r *VisitRepo) List(ctx context.Context, f repository.VisitFilter) ([]*entity.VisitView, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.StoreID != nil {
		add("v.store_id = $%d", *f.StoreID)
	}
	if len(f.Statuses) > 0 {
		add("v.status = ANY($%d)", f.Statuses)
	}
	if f.DateStart != nil {
		add("v.visit_date >= $%d", *f.DateStart)
	}
	if f.DateEnd != nil {
		add("v.visit_date <= $%d", *f.DateEnd)
	}

	query := visitViewQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.visit_date ASC, v.id ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list visits", err)
	}
	defer rows.Close()
	list := []*entity.VisitView{}
	for rows.Next() {
		var vv entity.VisitView
		if err := rows.Scan(viewDest(&vv)...); err != nil {
			return nil, mapError("scan visit", err)
		}
		list = append(list, &vv)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list visits", err)
	}
	return list, nil
}

// ExistsByKey indica si ya hay una visita con la misma tienda, fecha, comprador, proveedor y segmento.
func (r *VisitRepo) ExistsByKey(ctx context.Context, k repository.VisitKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM visits
			WHERE store_id = $1 AND visit_date = $2 AND buyer = $3 AND supplier_id = $4 AND segment = $5
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, k.StoreID, k.VisitDate, k.Buyer, k.SupplierID, k.Segment).Scan(&exists); err != nil {
		return false, mapError("exists visit", err)
	}
	return exists, nil
}
