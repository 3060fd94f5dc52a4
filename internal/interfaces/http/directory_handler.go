package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visitas-api/internal/application/dto"
	"github.com/jhoicas/visitas-api/internal/application/usecase"
)

// DirectoryHandler tiendas y proveedores.
type DirectoryHandler struct {
	stores    *usecase.StoreUseCase
	suppliers *usecase.SupplierUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(stores *usecase.StoreUseCase, suppliers *usecase.SupplierUseCase) *DirectoryHandler {
	return &DirectoryHandler{stores: stores, suppliers: suppliers}
}

// ListStores godoc
// @Summary      Listar tiendas
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StoreResponse
// @Router       /api/stores [get]
func (h *DirectoryHandler) ListStores(c *fiber.Ctx) error {
	list, err := h.stores.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStoreResponses(list))
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *DirectoryHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.suppliers.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSupplierResponses(list))
}

// UpsertSupplier godoc
// @Summary      Alta idempotente de proveedor
// @Description  Devuelve el ID existente si el nombre normalizado ya está registrado.
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Nombre del proveedor"
// @Success      200   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *DirectoryHandler) UpsertSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	id, err := h.suppliers.Upsert(c.UserContext(), GetActor(c), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}
