package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/usecase"
)

// ProductRequestHandler solicitudes de productos nuevos hechas por residentes.
type ProductRequestHandler struct {
	uc *usecase.ProductRequestUseCase
}

func NewProductRequestHandler(uc *usecase.ProductRequestUseCase) *ProductRequestHandler {
	return &ProductRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar un producto
// @Tags         product-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequestRequest  true  "Solicitud"
// @Success      201   {object}  dto.ProductRequestResponse
// @Router       /api/product-requests [post]
func (h *ProductRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud
// @Tags         product-requests
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ProductRequestResponse
// @Router       /api/product-requests/{id} [get]
func (h *ProductRequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         product-requests
// @Produce      json
// @Param        user_id  query  string  false  "Usuario"
// @Param        start    query  string  false  "Inicio"
// @Param        end      query  string  false  "Fin"
// @Success      200      {array}  dto.ProductRequestResponse
// @Router       /api/product-requests [get]
func (h *ProductRequestHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		out []dto.ProductRequestResponse
		err error
	)
	q, hasRange, perr := timeframe(c)
	switch {
	case perr != nil:
		return invalidTimeframe(c)
	case c.Query("user_id") != "":
		out, err = h.uc.ListByUser(ctx, c.Query("user_id"))
	case hasRange:
		from, to, ok := q.ParseTimeframe()
		if !ok {
			return invalidTimeframe(c)
		}
		out, err = h.uc.ListBetween(ctx, from, to)
	default:
		out, err = h.uc.List(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud
// @Tags         product-requests
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Router       /api/product-requests/{id} [delete]
func (h *ProductRequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
