package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visitas-api/internal/application/dto"
	"github.com/jhoicas/visitas-api/internal/application/visits"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
)

// VisitHandler maneja programación, ciclo de vida y consulta de visitas.
type VisitHandler struct {
	uc *visits.UseCase
}

// NewVisitHandler construye el handler.
func NewVisitHandler(uc *visits.UseCase) *VisitHandler {
	return &VisitHandler{uc: uc}
}

func visitID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// Schedule godoc
// @Summary      Programar visitas
// @Description  Crea una visita por tienda o, con repeat_weekly, una por semana durante el horizonte configurado.
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleVisitRequest  true  "Tiendas, fecha AAAA-MM-DD y datos de la visita"
// @Success      201   {object}  dto.ScheduleVisitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits [post]
func (h *VisitHandler) Schedule(c *fiber.Ctx) error {
	var in dto.ScheduleVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return badRequest(c, "VALIDATION", "date debe tener formato AAAA-MM-DD")
	}
	ids, err := h.uc.Schedule(c.UserContext(), GetActor(c), visits.ScheduleInput{
		StoreIDs:     in.StoreIDs,
		Date:         date,
		Kind:         in.Kind,
		Buyer:        in.Buyer,
		SupplierName: in.Supplier,
		Segment:      in.Segment,
		Warranty:     in.Warranty,
		Info:         in.Info,
		RepeatWeekly: in.RepeatWeekly,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ScheduleVisitResponse{IDs: ids})
}

// List godoc
// @Summary      Listar visitas
// @Description  Por fecha ascendente. Un usuario de tienda solo ve su tienda.
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  int     false  "Tienda"
// @Param        status    query  string  false  "Estados separados por coma"
// @Param        from      query  string  false  "Desde (AAAA-MM-DD, inclusivo)"
// @Param        to        query  string  false  "Hasta (AAAA-MM-DD, inclusivo)"
// @Param        weekday   query  string  false  "Día de la semana (Segunda-feira...)"
// @Success      200  {array}   dto.VisitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/visits [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	var f visits.ListFilter
	if s := c.Query("store_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return badRequest(c, "VALIDATION", "store_id inválido")
		}
		f.StoreID = &id
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("status") {
		for _, s := range strings.Split(string(raw), ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Statuses = append(f.Statuses, s)
			}
		}
	}
	var err error
	if f.DateStart, err = queryDate(c, "from"); err != nil {
		return badRequest(c, "VALIDATION", "from debe tener formato AAAA-MM-DD")
	}
	if f.DateEnd, err = queryDate(c, "to"); err != nil {
		return badRequest(c, "VALIDATION", "to debe tener formato AAAA-MM-DD")
	}
	f.Weekday = c.Query("weekday")

	list, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToVisitResponses(list))
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID godoc
// @Summary      Obtener visita
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la visita"
// @Success      200  {object}  dto.VisitResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [get]
func (h *VisitHandler) GetByID(c *fiber.Ctx) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	v, err := h.uc.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToVisitResponse(v))
}

// Update godoc
// @Summary      Editar visita
// @Description  Solo campos descriptivos; estado y fecha no cambian.
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                     true  "ID de la visita"
// @Param        body  body  dto.UpdateVisitRequest  true  "Campos descriptivos"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [put]
func (h *VisitHandler) Update(c *fiber.Ctx) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	err := h.uc.Update(c.UserContext(), GetActor(c), id, visits.UpdateInput{
		Buyer:        in.Buyer,
		SupplierName: in.Supplier,
		Segment:      in.Segment,
		Warranty:     in.Warranty,
		Info:         in.Info,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar visita
// @Tags         visits
// @Security     Bearer
// @Param        id   path  int  true  "ID de la visita"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [delete]
func (h *VisitHandler) Delete(c *fiber.Ctx) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Marcar visita como Concluída
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                    true   "ID de la visita"
// @Param        body  body  dto.CloseVisitRequest  false  "Comentario opcional del gerente"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/complete [post]
func (h *VisitHandler) Complete(c *fiber.Ctx) error {
	return h.close(c, h.uc.Complete)
}

// MarkNoShow godoc
// @Summary      Marcar visita como Não Compareceu
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                    true   "ID de la visita"
// @Param        body  body  dto.CloseVisitRequest  false  "Comentario opcional del gerente"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/no-show [post]
func (h *VisitHandler) MarkNoShow(c *fiber.Ctx) error {
	return h.close(c, h.uc.MarkNoShow)
}

type closeFunc func(ctx context.Context, actor entity.Actor, id int64, comment *string) error

func (h *VisitHandler) close(c *fiber.Ctx, fn closeFunc) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.CloseVisitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	if err := fn(c.UserContext(), GetActor(c), id, in.Comment); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reopen godoc
// @Summary      Reabrir visita
// @Description  Vuelve a Pendente y limpia los datos de cierre; el comentario se conserva.
// @Tags         visits
// @Security     Bearer
// @Param        id   path  int  true  "ID de la visita"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/reopen [post]
func (h *VisitHandler) Reopen(c *fiber.Ctx) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Reopen(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Comment godoc
// @Summary      Fijar comentario del gerente
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                 true  "ID de la visita"
// @Param        body  body  dto.CommentRequest  true  "Comentario; vacío lo borra"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/comment [post]
func (h *VisitHandler) Comment(c *fiber.Ctx) error {
	id, ok := visitID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.SetComment(c.UserContext(), GetActor(c), id, in.Comment); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
