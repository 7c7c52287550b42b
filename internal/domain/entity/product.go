package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold unidades por debajo de las cuales un producto se reporta como stock bajo.
const LowStockThreshold = 10

// Product representa un producto del catálogo de un negocio.
// Stock solo cambia vía transacciones (o edición explícita del catálogo) y nunca es negativo.
type Product struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
