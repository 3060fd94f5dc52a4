package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/visitas-api/internal/domain"
)

// Estados del ciclo de vida de una visita. Los valores son los persistidos.
const (
	VisitStatusPending   = "Pendente"
	VisitStatusCompleted = "Concluída"
	VisitStatusNoShow    = "Não Compareceu"
)

// Tipos de visita.
const (
	VisitKindVisit   = "VISITA"     // comprador / proveedor en tienda
	VisitKindTasting = "DEGUSTACAO" // promotor / degustación
)

// Valores de garantía comercial. Vacío significa "sin informar".
const (
	WarrantyUnset     = ""
	WarrantyYes       = "Sim"
	WarrantyNo        = "Não"
	WarrantyToConfirm = "A confirmar"
)

// SegmentTasting es el segmento obligatorio de las degustaciones.
const SegmentTasting = "DEGUSTACAO"

// Segments es la lista fija de segmentos aceptados.
var Segments = []string{
	"HORTIFRUTIGRANJEIRO", "EMBALAGEM", "CONGELADOS", "LATICINIOS", "SUPLEMENTOS",
	"PADARIA", "BEBIDAS", "MERCEARIA", "GRANJEIROS", "ACOUGUE", "OLEOS",
	"HIGIENE E BELEZA", "PET", "LIMPEZA DA CASA", "ECOMMERCE", "ROTISSERIA",
	"FRIOS E EMBUTIDOS", "QUEIJOS", "FLORICULTURA", "EMPORIO", "BAZAR",
	SegmentTasting,
}

// Visit es la entidad central: una visita programada a una tienda con su estado.
// CompletedAt y CompletedBy se asignan y se limpian juntos; una visita Pendente tiene ambos en nil.
type Visit struct {
	ID             int64
	StoreID        int64
	VisitDate      time.Time // fecha de calendario, medianoche UTC
	Weekday        string
	Kind           string
	Buyer          string
	SupplierID     int64
	Segment        string
	Warranty       string
	Info           string
	Status         string
	CreatedBy      int64
	CreatedAt      time.Time
	CompletedBy    *int64
	CompletedAt    *time.Time
	ManagerComment *string
	ReopenedBy     *int64
	ReopenedAt     *time.Time
}

// VisitView es una visita con los nombres de sus referencias, tal como la consumen
// los tableros y la exportación.
type VisitView struct {
	Visit
	StoreName       string
	SupplierName    string
	CreatedByName   string
	CompletedByName string
}

// IsValidStatus indica si s es un estado conocido.
func IsValidStatus(s string) bool {
	switch s {
	case VisitStatusPending, VisitStatusCompleted, VisitStatusNoShow:
		return true
	}
	return false
}

// IsValidWarranty indica si w es un valor de garantía permitido.
func IsValidWarranty(w string) bool {
	switch w {
	case WarrantyUnset, WarrantyYes, WarrantyNo, WarrantyToConfirm:
		return true
	}
	return false
}

// IsValidKind indica si k es un tipo de visita conocido.
func IsValidKind(k string) bool {
	return k == VisitKindVisit || k == VisitKindTasting
}

// IsValidSegment indica si s pertenece a la lista fija de segmentos.
func IsValidSegment(s string) bool {
	for _, seg := range Segments {
		if seg == s {
			return true
		}
	}
	return false
}

// Complete cierra la visita como Concluída. Se permite desde Pendente o Não Compareceu.
// El comentario solo se sobrescribe si comment no es nil; un comentario vacío lo borra.
func (v *Visit) Complete(userID int64, comment *string, now time.Time) error {
	return v.close(VisitStatusCompleted, userID, comment, now, VisitStatusPending, VisitStatusNoShow)
}

// MarkNoShow cierra la visita como Não Compareceu. Se permite desde Pendente o Concluída.
func (v *Visit) MarkNoShow(userID int64, comment *string, now time.Time) error {
	return v.close(VisitStatusNoShow, userID, comment, now, VisitStatusPending, VisitStatusCompleted)
}

// Reopen devuelve la visita a Pendente, limpia los datos de cierre y registra quién la reabrió.
// manager_comment se conserva.
func (v *Visit) Reopen(userID int64, now time.Time) error {
	if v.Status != VisitStatusCompleted && v.Status != VisitStatusNoShow {
		return fmt.Errorf("%w: no se puede reabrir una visita en estado %q", domain.ErrConflict, v.Status)
	}
	v.Status = VisitStatusPending
	v.CompletedAt = nil
	v.CompletedBy = nil
	v.ReopenedBy = &userID
	v.ReopenedAt = &now
	return nil
}

func (v *Visit) close(target string, userID int64, comment *string, now time.Time, from ...string) error {
	allowed := false
	for _, s := range from {
		if v.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: transición %q -> %q no permitida", domain.ErrConflict, v.Status, target)
	}
	v.Status = target
	v.CompletedBy = &userID
	v.CompletedAt = &now
	switch {
	case comment == nil:
	case *comment == "":
		v.ManagerComment = nil
	default:
		c := *comment
		v.ManagerComment = &c
	}
	return nil
}
