package dto

// InventoryReportQuery filtros de GET /reports/inventory.
type InventoryReportQuery struct {
	LowStock bool `query:"lowStock"`
}
