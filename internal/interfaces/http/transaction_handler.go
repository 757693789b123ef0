package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// TransactionHandler expone el canje de vouchers y la consulta de transacciones.
type TransactionHandler struct {
	uc *purchase.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *purchase.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Comprar producto con vouchers
// @Description  Descuenta stock y saldo en una sola unidad de trabajo. El total se calcula con el precio vigente.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "user_id, product_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.Purchase(c.UserContext(), in.UserID, in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tx))
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// List godoc
// @Summary      Listar transacciones
// @Description  Filtros excluyentes, en orden de prioridad: user_id, product_id, start/end.
// @Tags         transactions
// @Produce      json
// @Param        user_id     query  string  false  "Usuario"
// @Param        product_id  query  string  false  "Producto"
// @Param        start       query  string  false  "Inicio (RFC 3339 o YYYY-MM-DD)"
// @Param        end         query  string  false  "Fin (RFC 3339 o YYYY-MM-DD)"
// @Success      200         {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		list []*entity.Transaction
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
	return c.JSON(dto.FromTransactions(list))
}

// Delete godoc
// @Summary      Eliminar transacción
// @Description  Borra el registro; no revierte stock ni saldo.
// @Tags         transactions
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
