package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// ReportUseCase reportes de inventario y de transacciones.
type ReportUseCase struct {
	inventory  repository.InventoryStore
	businesses repository.BusinessRepository
	queries    *transaction.QueryUseCase
	generator  TransactionsPDFGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	inventory repository.InventoryStore,
	businesses repository.BusinessRepository,
	queries *transaction.QueryUseCase,
	generator TransactionsPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{inventory: inventory, businesses: businesses, queries: queries, generator: generator}
}

// Inventory lista productos por stock ascendente; lowStock deja solo stock < LowStockThreshold.
func (uc *ReportUseCase) Inventory(ctx context.Context, businessID string, lowStock bool) ([]dto.ProductResponse, error) {
	var below *int
	if lowStock {
		threshold := entity.LowStockThreshold
		below = &threshold
	}
	list, err := uc.inventory.ListByStock(ctx, businessID, below)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:          p.ID,
			BusinessID:  p.BusinessID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			Category:    p.Category,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return out, nil
}

// Transactions reporte de transacciones con filtros de tipo, fechas y contraparte.
func (uc *ReportUseCase) Transactions(ctx context.Context, businessID string, q dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	return uc.queries.List(ctx, businessID, q)
}

// TransactionsPDF genera el reporte de transacciones en PDF.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) TransactionsPDF(ctx context.Context, businessID string, q dto.TransactionQuery) ([]byte, string, error) {
	rows, err := uc.queries.List(ctx, businessID, q)
	if err != nil {
		return nil, "", err
	}
	header := TransactionsPDFHeader{Query: q}
	business, err := uc.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: obtener negocio: %w", err)
	}
	if business != nil {
		header.BusinessName = business.BusinessName
	}
	pdfBytes, err := uc.generator.GenerateTransactionsPDF(ctx, header, rows)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "transactions-report.pdf", nil
}
