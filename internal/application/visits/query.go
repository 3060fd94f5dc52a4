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

// ListFilter filtro de consulta. Campos nil o vacíos no restringen; el rango de fechas es inclusivo.
type ListFilter struct {
	StoreID   *int64
	Statuses  []string
	DateStart *time.Time
	DateEnd   *time.Time
	Weekday   string
}

// List devuelve las visitas visibles para el actor, por fecha ascendente y luego por ID.
// Un actor de rol loja siempre queda restringido a su tienda, ignorando StoreID.
// El filtro por día de la semana se aplica sobre la etiqueta derivada, después de la consulta.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, f ListFilter) ([]*entity.VisitView, error) {
	storeID := f.StoreID
	if !actor.IsComercial() {
		if actor.StoreID == nil {
			return nil, fmt.Errorf("%w: usuario de tienda sin tienda asignada", domain.ErrForbidden)
		}
		storeID = actor.StoreID
	}
	for _, s := range f.Statuses {
		if !entity.IsValidStatus(s) {
			return nil, invalid("estado %q desconocido", s)
		}
	}
	if f.Weekday != "" && !schedule.IsValidWeekdayLabel(f.Weekday) {
		return nil, invalid("día de la semana %q desconocido", f.Weekday)
	}

	filter := repository.VisitFilter{StoreID: storeID, Statuses: f.Statuses}
	if f.DateStart != nil {
		d := schedule.DateOnly(*f.DateStart)
		filter.DateStart = &d
	}
	if f.DateEnd != nil {
		d := schedule.DateOnly(*f.DateEnd)
		filter.DateEnd = &d
	}

	list, err := uc.visitRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if f.Weekday == "" {
		return list, nil
	}
	out := make([]*entity.VisitView, 0, len(list))
	for _, v := range list {
		if v.Weekday == f.Weekday {
			out = append(out, v)
		}
	}
	return out, nil
}

// Get devuelve una visita con sus nombres asociados.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id int64) (*entity.VisitView, error) {
	v, err := uc.visitRepo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notFound(id)
	}
	if !actor.CanAccessStore(v.StoreID) {
		return nil, fmt.Errorf("%w: la visita %d pertenece a otra tienda", domain.ErrForbidden, id)
	}
	return v, nil
}
