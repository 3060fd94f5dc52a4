package visits

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

// ScheduleInput entrada para programar visitas en una o varias tiendas.
type ScheduleInput struct {
	StoreIDs     []int64
	Date         time.Time
	Kind         string // VISITA por defecto
	Buyer        string
	SupplierName string
	Segment      string // DEGUSTACAO por defecto cuando Kind = DEGUSTACAO
	Warranty     string
	Info         string
	RepeatWeekly bool
}

// UpdateInput campos descriptivos editables de una visita.
type UpdateInput struct {
	Buyer        string
	SupplierName string
	Segment      string
	Warranty     string
	Info         string
}

// details es la parte descriptiva validada, común a programar y editar.
type details struct {
	kind, buyer, supplierName, supplierKey, segment, warranty, info string
}

func validateDetails(kind, buyer, supplierName, segment, warranty, info string) (details, error) {
	d := details{
		kind:         kind,
		buyer:        schedule.CleanName(buyer),
		supplierName: schedule.CleanName(supplierName),
		segment:      segment,
		warranty:     warranty,
		info:         info,
	}
	if d.kind == "" {
		d.kind = entity.VisitKindVisit
	}
	if !entity.IsValidKind(d.kind) {
		return d, invalid("tipo de visita %q desconocido", kind)
	}
	if d.kind == entity.VisitKindTasting && d.segment == "" {
		d.segment = entity.SegmentTasting
	}
	if d.supplierName == "" {
		return d, invalid("el proveedor es obligatorio")
	}
	if !entity.IsValidSegment(d.segment) {
		return d, invalid("segmento %q fuera de la lista", segment)
	}
	if d.kind == entity.VisitKindTasting && d.segment != entity.SegmentTasting {
		return d, invalid("una degustación usa el segmento %s", entity.SegmentTasting)
	}
	if !entity.IsValidWarranty(d.warranty) {
		return d, invalid("garantía %q no permitida", warranty)
	}
	d.supplierKey = schedule.SupplierKey(d.supplierName)
	return d, nil
}

// uniqueIDs elimina repetidos conservando el orden.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Schedule crea una visita por tienda, o RepeatWeeks visitas semanales si in.RepeatWeekly.
// Cada visita es independiente y nace Pendente; el día de la semana sale de su propia fecha.
// Todo ocurre en una transacción: ante cualquier error no se crea ninguna fila.
// No es idempotente: reintentar la misma entrada crea visitas nuevas salvo con RejectDuplicates.
func (uc *UseCase) Schedule(ctx context.Context, actor entity.Actor, in ScheduleInput) ([]int64, error) {
	if err := requireComercial(actor); err != nil {
		return nil, err
	}
	storeIDs := uniqueIDs(in.StoreIDs)
	if len(storeIDs) == 0 {
		return nil, invalid("seleccione al menos una tienda")
	}
	if in.Date.IsZero() {
		return nil, invalid("la fecha es obligatoria")
	}
	d, err := validateDetails(in.Kind, in.Buyer, in.SupplierName, in.Segment, in.Warranty, in.Info)
	if err != nil {
		return nil, err
	}

	count := 1
	if in.RepeatWeekly {
		count = uc.cfg.RepeatWeeks
	}
	dates := schedule.Expand(in.Date, count)
	createdAt := uc.now()

	var ids []int64
	err = uc.txRunner.Run(ctx, func(
		visitRepo repository.VisitRepository,
		supplierRepo repository.SupplierRepository,
		storeRepo repository.StoreRepository,
	) error {
		for _, storeID := range storeIDs {
			store, err := storeRepo.GetByID(ctx, storeID)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("tienda %d: %w", storeID, domain.ErrNotFound)
			}
		}
		supplierID, err := supplierRepo.Upsert(ctx, d.supplierName, d.supplierKey)
		if err != nil {
			return err
		}

		ids = make([]int64, 0, len(storeIDs)*len(dates))
		for _, storeID := range storeIDs {
			for _, date := range dates {
				if uc.cfg.RejectDuplicates {
					exists, err := visitRepo.ExistsByKey(ctx, repository.VisitKey{
						StoreID: storeID, VisitDate: date, Buyer: d.buyer, SupplierID: supplierID, Segment: d.segment,
					})
					if err != nil {
						return err
					}
					if exists {
						return fmt.Errorf("%w: ya existe una visita para la tienda %d el %s",
							domain.ErrConflict, storeID, schedule.FormatDate(date))
					}
				}
				v := &entity.Visit{
					StoreID:    storeID,
					VisitDate:  date,
					Weekday:    schedule.WeekdayLabel(date),
					Kind:       d.kind,
					Buyer:      d.buyer,
					SupplierID: supplierID,
					Segment:    d.segment,
					Warranty:   d.warranty,
					Info:       d.info,
					Status:     entity.VisitStatusPending,
					CreatedBy:  actor.UserID,
					CreatedAt:  createdAt,
				}
				if err := visitRepo.Create(ctx, v); err != nil {
					return err
				}
				ids = append(ids, v.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("user_id", actor.UserID).
		Ints64("store_ids", storeIDs).
		Str("date", schedule.FormatDate(in.Date)).
		Bool("repeat_weekly", in.RepeatWeekly).
		Int("visits", len(ids)).
		Msg("visitas programadas")
	return ids, nil
}

// Update modifica solo los campos descriptivos; estado y fechas no cambian.
func (uc *UseCase) Update(ctx context.Context, actor entity.Actor, id int64, in UpdateInput) error {
	if err := requireComercial(actor); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		visitRepo repository.VisitRepository,
		supplierRepo repository.SupplierRepository,
		_ repository.StoreRepository,
	) error {
		v, err := visitRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return notFound(id)
		}
		d, err := validateDetails(v.Kind, in.Buyer, in.SupplierName, in.Segment, in.Warranty, in.Info)
		if err != nil {
			return err
		}
		supplierID, err := supplierRepo.Upsert(ctx, d.supplierName, d.supplierKey)
		if err != nil {
			return err
		}
		v.Buyer = d.buyer
		v.SupplierID = supplierID
		v.Segment = d.segment
		v.Warranty = d.warranty
		v.Info = d.info
		return visitRepo.UpdateDetails(ctx, v)
	})
}

// Delete borra la visita de forma definitiva.
func (uc *UseCase) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if err := requireComercial(actor); err != nil {
		return err
	}
	if err := uc.visitRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("visit_id", id).Int64("user_id", actor.UserID).Msg("visita eliminada")
	return nil
}
