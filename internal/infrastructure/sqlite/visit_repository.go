package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación de VisitRepository sobre SQLite.
// visit_date se guarda como TEXT AAAA-MM-DD, que ordena y compara igual que la fecha.
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador. Acepta *sql.DB o *sql.Tx.
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

type scanner interface {
	Scan(dest ...any) error
}

// visitRow agrupa los destinos de Scan que necesitan conversión.
type visitRow struct {
	visitDate, createdAt    string
	completedBy, reopenedBy sql.NullInt64
	completedAt, reopenedAt sql.NullString
	managerComment          sql.NullString
}

func (row *visitRow) dest(v *entity.Visit) []any {
	return []any{
		&v.ID, &v.StoreID, &row.visitDate, &v.Weekday, &v.Kind, &v.Buyer, &v.SupplierID, &v.Segment,
		&v.Warranty, &v.Info, &v.Status, &v.CreatedBy, &row.createdAt, &row.completedBy, &row.completedAt,
		&row.managerComment, &row.reopenedBy, &row.reopenedAt,
	}
}

func (row *visitRow) apply(v *entity.Visit) error {
	var err error
	if v.VisitDate, err = schedule.ParseDate(row.visitDate); err != nil {
		return fmt.Errorf("visit_date: %w", err)
	}
	if v.CreatedAt, err = time.Parse(timeLayout, row.createdAt); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if v.CompletedAt, err = parseNullTime(row.completedAt); err != nil {
		return fmt.Errorf("completed_at: %w", err)
	}
	if v.ReopenedAt, err = parseNullTime(row.reopenedAt); err != nil {
		return fmt.Errorf("reopened_at: %w", err)
	}
	v.CompletedBy = nullInt64(row.completedBy)
	v.ReopenedBy = nullInt64(row.reopenedBy)
	v.ManagerComment = nullString(row.managerComment)
	return nil
}

func scanVisit(s scanner) (*entity.Visit, error) {
	var (
		v   entity.Visit
		row visitRow
	)
	if err := s.Scan(row.dest(&v)...); err != nil {
		return nil, err
	}
	if err := row.apply(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanView(s scanner) (*entity.VisitView, error) {
	var (
		vv  entity.VisitView
		row visitRow
	)
	dest := append(row.dest(&vv.Visit), &vv.StoreName, &vv.SupplierName, &vv.CreatedByName, &vv.CompletedByName)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if err := row.apply(&vv.Visit); err != nil {
		return nil, err
	}
	return &vv, nil
}

func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	query := `
		INSERT INTO visits (store_id, visit_date, weekday, kind, buyer, supplier_id, segment,
		                    warranty, info, status, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		v.StoreID, schedule.FormatDate(v.VisitDate), v.Weekday, v.Kind, v.Buyer, v.SupplierID, v.Segment,
		v.Warranty, v.Info, v.Status, v.CreatedBy, formatTime(v.CreatedAt),
	)
	if err != nil {
		return mapError("insert visit", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError("insert visit", err)
	}
	v.ID = id
	return nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*entity.Visit, error) {
	v, err := scanVisit(r.q.QueryRowContext(ctx, `SELECT `+visitColumns+` FROM visits v WHERE v.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get visit", err)
	}
	return v, nil
}

// GetByIDForUpdate equivale a GetByID: SQLite serializa las escrituras de la transacción.
func (r *VisitRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Visit, error) {
	return r.GetByID(ctx, id)
}

func (r *VisitRepo) GetView(ctx context.Context, id int64) (*entity.VisitView, error) {
	vv, err := scanView(r.q.QueryRowContext(ctx, visitViewQuery+` WHERE v.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get visit view", err)
	}
	return vv, nil
}

func (r *VisitRepo) UpdateDetails(ctx context.Context, v *entity.Visit) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE visits SET buyer = ?, supplier_id = ?, segment = ?, warranty = ?, info = ? WHERE id = ?`,
		v.Buyer, v.SupplierID, v.Segment, v.Warranty, v.Info, v.ID,
	)
	if err != nil {
		return mapError("update visit", err)
	}
	return requireAffected(res, "update visit", v.ID)
}

func (r *VisitRepo) UpdateLifecycle(ctx context.Context, v *entity.Visit) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE visits SET status = ?, completed_by = ?, completed_at = ?, manager_comment = ?,
		                  reopened_by = ?, reopened_at = ?
		WHERE id = ?`,
		v.Status, v.CompletedBy, formatNullTime(v.CompletedAt), v.ManagerComment,
		v.ReopenedBy, formatNullTime(v.ReopenedAt), v.ID,
	)
	if err != nil {
		return mapError("update visit status", err)
	}
	return requireAffected(res, "update visit status", v.ID)
}

func (r *VisitRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM visits WHERE id = ?`, id)
	if err != nil {
		return mapError("delete visit", err)
	}
	return requireAffected(res, "delete visit", id)
}

func requireAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
	}
	return nil
}

// List lista visitas según el filtro, por fecha ascendente y luego por ID.
func (r *VisitRepo) List(ctx context.Context, f repository.VisitFilter) ([]*entity.VisitView, error) {
	var (
		conds []string
		args  []any
	)
	if f.StoreID != nil {
		conds = append(conds, "v.store_id = ?")
		args = append(args, *f.StoreID)
	}
	if len(f.Statuses) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(f.Statuses)), ", ")
		conds = append(conds, "v.status IN ("+marks+")")
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	if f.DateStart != nil {
		conds = append(conds, "v.visit_date >= ?")
		args = append(args, schedule.FormatDate(*f.DateStart))
	}
	if f.DateEnd != nil {
		conds = append(conds, "v.visit_date <= ?")
		args = append(args, schedule.FormatDate(*f.DateEnd))
	}

	query := visitViewQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.visit_date ASC, v.id ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list visits", err)
	}
	defer rows.Close()
	list := []*entity.VisitView{}
	for rows.Next() {
		vv, err := scanView(rows)
		if err != nil {
			return nil, mapError("scan visit", err)
		}
		list = append(list, vv)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list visits", err)
	}
	return list, nil
}

func (r *VisitRepo) ExistsByKey(ctx context.Context, k repository.VisitKey) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM visits
			WHERE store_id = ? AND visit_date = ? AND buyer = ? AND supplier_id = ? AND segment = ?
		)`,
		k.StoreID, schedule.FormatDate(k.VisitDate), k.Buyer, k.SupplierID, k.Segment,
	).Scan(&exists)
	if err != nil {
		return false, mapError("exists visit", err)
	}
	return exists, nil
}
