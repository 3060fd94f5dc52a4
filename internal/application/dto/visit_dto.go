package dto

import (
	"time"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

// ScheduleVisitRequest entrada para programar visitas. Date en formato AAAA-MM-DD.
type ScheduleVisitRequest struct {
	StoreIDs     []int64 `json:"store_ids" validate:"required,min=1"`
	Date         string  `json:"date" validate:"required"`
	Kind         string  `json:"kind" validate:"omitempty,oneof=VISITA DEGUSTACAO"`
	Buyer        string  `json:"buyer"`
	Supplier     string  `json:"supplier" validate:"required"`
	Segment      string  `json:"segment"`
	Warranty     string  `json:"warranty"`
	Info         string  `json:"info"`
	RepeatWeekly bool    `json:"repeat_weekly"`
}

// ScheduleVisitResponse IDs de las visitas creadas, en orden tienda / semana.
type ScheduleVisitResponse struct {
	IDs []int64 `json:"ids"`
}

// UpdateVisitRequest campos descriptivos editables.
type UpdateVisitRequest struct {
	Buyer    string `json:"buyer"`
	Supplier string `json:"supplier" validate:"required"`
	Segment  string `json:"segment"`
	Warranty string `json:"warranty"`
	Info     string `json:"info"`
}

// CloseVisitRequest cuerpo opcional de complete / no-show.
type CloseVisitRequest struct {
	Comment *string `json:"comment"`
}

// CommentRequest cuerpo de comment; vacío borra el comentario.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// VisitResponse salida de una visita con los nombres resueltos.
type VisitResponse struct {
	ID              int64      `json:"id"`
	StoreID         int64      `json:"store_id"`
	StoreName       string     `json:"store_name"`
	Date            string     `json:"date"`
	Weekday         string     `json:"weekday"`
	Kind            string     `json:"kind"`
	Buyer           string     `json:"buyer"`
	SupplierID      int64      `json:"supplier_id"`
	SupplierName    string     `json:"supplier_name"`
	Segment         string     `json:"segment"`
	Warranty        string     `json:"warranty"`
	Info            string     `json:"info"`
	Status          string     `json:"status"`
	CreatedBy       int64      `json:"created_by"`
	CreatedByName   string     `json:"created_by_name"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedBy     *int64     `json:"completed_by,omitempty"`
	CompletedByName string     `json:"completed_by_name,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ManagerComment  *string    `json:"manager_comment,omitempty"`
	ReopenedBy      *int64     `json:"reopened_by,omitempty"`
	ReopenedAt      *time.Time `json:"reopened_at,omitempty"`
}

// ToVisitResponse mapea una VisitView a su salida.
func ToVisitResponse(v *entity.VisitView) VisitResponse {
	return VisitResponse{
		ID:              v.ID,
		StoreID:         v.StoreID,
		StoreName:       v.StoreName,
		Date:            schedule.FormatDate(v.VisitDate),
		Weekday:         v.Weekday,
		Kind:            v.Kind,
		Buyer:           v.Buyer,
		SupplierID:      v.SupplierID,
		SupplierName:    v.SupplierName,
		Segment:         v.Segment,
		Warranty:        v.Warranty,
		Info:            v.Info,
		Status:          v.Status,
		CreatedBy:       v.CreatedBy,
		CreatedByName:   v.CreatedByName,
		CreatedAt:       v.CreatedAt,
		CompletedBy:     v.CompletedBy,
		CompletedByName: v.CompletedByName,
		CompletedAt:     v.CompletedAt,
		ManagerComment:  v.ManagerComment,
		ReopenedBy:      v.ReopenedBy,
		ReopenedAt:      v.ReopenedAt,
	}
}

// ToVisitResponses mapea un listado.
func ToVisitResponses(list []*entity.VisitView) []VisitResponse {
	out := make([]VisitResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToVisitResponse(v))
	}
	return out
}
