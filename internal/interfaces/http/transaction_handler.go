package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
)

// TransactionHandler registro y consulta de ventas/compras.
type TransactionHandler struct {
	processor *transaction.Processor
	queries   *transaction.QueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(processor *transaction.Processor, queries *transaction.QueryUseCase) *TransactionHandler {
	return &TransactionHandler{processor: processor, queries: queries}
}

// Create godoc
// @Summary      Registrar venta o compra
// @Description  Aplica los ajustes de stock de todas las líneas y registra la transacción, o no aplica nada.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "type, products, customerId|vendorId, date"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION | INSUFFICIENT_STOCK"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	tx, err := h.processor.SubmitFromRequest(ctx, GetBusinessID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.Present(ctx, tx)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "sale | purchase"
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Success      200        {array}   dto.TransactionResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.TransactionQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	out, err := h.queries.List(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.Get(c.UserContext(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
