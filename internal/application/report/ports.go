package report

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
)

// TransactionsPDFHeader datos de cabecera del reporte impreso.
type TransactionsPDFHeader struct {
	BusinessName string
	Query        dto.TransactionQuery
}

// TransactionsPDFGenerator puerto para renderizar el reporte de transacciones.
// La implementación vive en infrastructure/pdf.
type TransactionsPDFGenerator interface {
	GenerateTransactionsPDF(ctx context.Context, header TransactionsPDFHeader, rows []dto.TransactionResponse) ([]byte, error)
}
