package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest una línea del body de POST /transactions.
type TransactionLineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateTransactionRequest body de POST /transactions.
// CustomerID aplica a ventas y VendorID a compras; el otro se ignora.
// Date es opcional (RFC3339 o YYYY-MM-DD); por defecto la hora de registro.
type CreateTransactionRequest struct {
	Type       string                   `json:"type"`
	CustomerID string                   `json:"customerId,omitempty"`
	VendorID   string                   `json:"vendorId,omitempty"`
	Products   []TransactionLineRequest `json:"products"`
	Date       string                   `json:"date,omitempty"`
}

// TransactionQuery filtros de GET /transactions y GET /reports/transactions.
type TransactionQuery struct {
	Type       string `query:"type"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	CustomerID string `query:"customerId"`
	VendorID   string `query:"vendorId"`
}

// TransactionLineResponse línea con el nombre de producto resuelto (vacío si no es del negocio).
type TransactionLineResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse transacción enriquecida con nombres de contraparte y productos.
type TransactionResponse struct {
	ID           string                    `json:"id"`
	BusinessID   string                    `json:"businessId"`
	Type         string                    `json:"type"`
	CustomerID   string                    `json:"customerId,omitempty"`
	CustomerName string                    `json:"customerName,omitempty"`
	VendorID     string                    `json:"vendorId,omitempty"`
	VendorName   string                    `json:"vendorName,omitempty"`
	Products     []TransactionLineResponse `json:"products"`
	TotalAmount  decimal.Decimal           `json:"totalAmount"`
	Date         time.Time                 `json:"date"`
	CreatedAt    time.Time                 `json:"createdAt"`
}
