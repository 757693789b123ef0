package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/preorder"
	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// PreorderHandler maneja reservas de stock futuro.
type PreorderHandler struct {
	uc *preorder.UseCase
}

// NewPreorderHandler construye el handler.
func NewPreorderHandler(uc *preorder.UseCase) *PreorderHandler {
	return &PreorderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear preorden
// @Tags         preorders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePreorderRequest  true  "user_id, product_id, quantity"
// @Success      201   {object}  dto.PreorderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/preorders [post]
func (h *PreorderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePreorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Create(c.UserContext(), in.UserID, in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPreorder(p))
}

// GetByID godoc
// @Summary      Obtener preorden
// @Tags         preorders
// @Produce      json
// @Param        id   path  string  true  "ID de la preorden"
// @Success      200  {object}  dto.PreorderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/preorders/{id} [get]
func (h *PreorderHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPreorder(p))
}

// List godoc
// @Summary      Listar preórdenes
// @Description  Filtros excluyentes, en orden de prioridad: user_id, product_id, status, start/end.
// @Tags         preorders
// @Produce      json
// @Param        user_id     query  string  false  "Usuario"
// @Param        product_id  query  string  false  "Producto"
// @Param        status      query  string  false  "PENDING | FULFILLED | CANCELLED"
// @Param        start       query  string  false  "Inicio"
// @Param        end         query  string  false  "Fin"
// @Success      200         {array}  dto.PreorderResponse
// @Router       /api/preorders [get]
func (h *PreorderHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		list []*entity.Preorder
		err  error
	)
	q, hasRange, perr := timeframe(c)
	switch {
	case perr != nil:
		return invalidTimeframe(c)
	case c.Query("user_id") != "":
		list, err = h.uc.ListByUser(ctx, c.Query("user_id"))
	case c.Query("product_id") != "":
		list, err = h.uc.ListByProduct(ctx, c.Query("product_id"))
	case c.Query("status") != "":
		list, err = h.uc.ListByStatus(ctx, c.Query("status"))
	case hasRange:
		from, to, ok := q.ParseTimeframe()
		if !ok {
			return invalidTimeframe(c)
		}
		list, err = h.uc.ListBetween(ctx, from, to)
	default:
		list, err = h.uc.List(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPreorders(list))
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad de una preorden pendiente
// @Tags         preorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la preorden"
// @Param        body  body  dto.QuantityRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.PreorderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/preorders/{id}/quantity [put]
func (h *PreorderHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.UpdateQuantity(c.UserContext(), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPreorder(p))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una preorden
// @Tags         preorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la preorden"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PreorderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/preorders/{id}/status [patch]
func (h *PreorderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPreorder(p))
}

// Delete godoc
// @Summary      Eliminar preorden
// @Tags         preorders
// @Param        id   path  string  true  "ID de la preorden"
// @Success      204
// @Router       /api/preorders/{id} [delete]
func (h *PreorderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
