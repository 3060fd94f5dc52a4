package visits

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

// Complete marca la visita como Concluída. comment nil conserva el comentario actual.
func (uc *UseCase) Complete(ctx context.Context, actor entity.Actor, id int64, comment *string) error {
	return uc.transition(ctx, actor, id, "visita concluida", func(v *entity.Visit, now time.Time) error {
		return v.Complete(actor.UserID, comment, now)
	})
}

// MarkNoShow marca la visita como Não Compareceu. comment nil conserva el comentario actual.
func (uc *UseCase) MarkNoShow(ctx context.Context, actor entity.Actor, id int64, comment *string) error {
	return uc.transition(ctx, actor, id, "visita sin asistencia", func(v *entity.Visit, now time.Time) error {
		return v.MarkNoShow(actor.UserID, comment, now)
	})
}

// Reopen devuelve la visita a Pendente y registra quién la reabrió.
func (uc *UseCase) Reopen(ctx context.Context, actor entity.Actor, id int64) error {
	return uc.transition(ctx, actor, id, "visita reabierta", func(v *entity.Visit, now time.Time) error {
		return v.Reopen(actor.UserID, now)
	})
}

// SetComment fija el comentario del gerente sin cambiar el estado. Vacío lo borra.
func (uc *UseCase) SetComment(ctx context.Context, actor entity.Actor, id int64, comment string) error {
	return uc.transition(ctx, actor, id, "comentario actualizado", func(v *entity.Visit, _ time.Time) error {
		if comment == "" {
			v.ManagerComment = nil
			return nil
		}
		v.ManagerComment = &comment
		return nil
	})
}

// transition lee la visita con bloqueo, verifica el alcance del actor, aplica apply y persiste.
func (uc *UseCase) transition(
	ctx context.Context,
	actor entity.Actor,
	id int64,
	event string,
	apply func(v *entity.Visit, now time.Time) error,
) error {
	var status string
	err := uc.txRunner.Run(ctx, func(
		visitRepo repository.VisitRepository,
		_ repository.SupplierRepository,
		_ repository.StoreRepository,
	) error {
		v, err := visitRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return notFound(id)
		}
		if !actor.CanAccessStore(v.StoreID) {
			return fmt.Errorf("%w: la visita %d pertenece a otra tienda", domain.ErrForbidden, id)
		}
		if err := apply(v, uc.now()); err != nil {
			return err
		}
		status = v.Status
		return visitRepo.UpdateLifecycle(ctx, v)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Int64("visit_id", id).
		Int64("user_id", actor.UserID).
		Str("status", status).
		Msg(event)
	return nil
}
