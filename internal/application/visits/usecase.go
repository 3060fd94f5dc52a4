// Package visits implementa el motor de visitas: programación con recurrencia semanal,
// ciclo de vida (Pendente → Concluída | Não Compareceu → Pendente) y consultas filtradas.
package visits

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

// Config políticas del motor.
type Config struct {
	// RepeatWeeks cantidad de visitas que genera una repetición semanal (por defecto 4).
	RepeatWeeks int
	// RejectDuplicates rechaza la programación si ya existe una visita con la misma
	// tienda, fecha, comprador, proveedor y segmento.
	RejectDuplicates bool
}

// UseCase casos de uso de visitas. La identidad del llamador llega siempre como entity.Actor.
type UseCase struct {
	txRunner  TxRunner
	visitRepo repository.VisitRepository
	cfg       Config
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, visitRepo repository.VisitRepository, cfg Config, log zerolog.Logger) *UseCase {
	if cfg.RepeatWeeks <= 0 {
		cfg.RepeatWeeks = schedule.DefaultRepeatWeeks
	}
	return &UseCase{
		txRunner:  txRunner,
		visitRepo: visitRepo,
		cfg:       cfg,
		log:       log.With().Str("component", "visits").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func requireComercial(actor entity.Actor) error {
	if !actor.IsComercial() {
		return fmt.Errorf("%w: operación reservada al rol comercial", domain.ErrForbidden)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(id int64) error {
	return fmt.Errorf("visita %d: %w", id, domain.ErrNotFound)
}
