package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/usecase"
)

// ProductLogHandler consulta de la auditoría de productos (solo lectura).
type ProductLogHandler struct {
	uc *usecase.ProductLogUseCase
}

func NewProductLogHandler(uc *usecase.ProductLogUseCase) *ProductLogHandler {
	return &ProductLogHandler{uc: uc}
}

// List godoc
// @Summary      Listar auditoría de productos
// @Tags         product-logs
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        start       query  string  false  "Inicio"
// @Param        end         query  string  false  "Fin"
// @Success      200         {array}  dto.ProductLogResponse
// @Router       /api/product-logs [get]
func (h *ProductLogHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		out []dto.ProductLogResponse
		err error
	)
	q, hasRange, perr := timeframe(c)
	switch {
	case perr != nil:
		return invalidTimeframe(c)
	case c.Query("product_id") != "":
		out, err = h.uc.ListByProduct(ctx, c.Query("product_id"))
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
