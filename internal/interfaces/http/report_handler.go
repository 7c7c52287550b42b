package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/application/report"
)

// ReportHandler reportes de inventario y transacciones.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario (stock ascendente)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        lowStock  query  bool  false  "Solo productos con stock < 10"
// @Success      200       {array}   dto.ProductResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	var q dto.InventoryReportQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.Inventory(c.UserContext(), GetBusinessID(c), q.LowStock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Reporte de transacciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "sale | purchase"
// @Param        startDate   query  string  false  "Desde"
// @Param        endDate     query  string  false  "Hasta"
// @Param        customerId  query  string  false  "Cliente"
// @Param        vendorId    query  string  false  "Proveedor"
// @Success      200         {array}   dto.TransactionResponse
// @Router       /api/reports/transactions [get]
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	var q dto.TransactionQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.Transactions(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransactionsPDF godoc
// @Summary      Reporte de transacciones en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        type        query  string  false  "sale | purchase"
// @Param        startDate   query  string  false  "Desde"
// @Param        endDate     query  string  false  "Hasta"
// @Param        customerId  query  string  false  "Cliente"
// @Param        vendorId    query  string  false  "Proveedor"
// @Success      200         {file}    binary
// @Router       /api/reports/transactions/pdf [get]
func (h *ReportHandler) TransactionsPDF(c *fiber.Ctx) error {
	var q dto.TransactionQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	pdfBytes, filename, err := h.uc.TransactionsPDF(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
