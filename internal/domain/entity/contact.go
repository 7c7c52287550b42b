package entity

import "time"

// ContactType clasifica un contacto como cliente o proveedor.
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
)

// Valid indica si el tipo es uno de los admitidos.
func (t ContactType) Valid() bool {
	return t == ContactTypeCustomer || t == ContactTypeVendor
}

// Contact representa un cliente o proveedor de un negocio.
type Contact struct {
	ID         string
	BusinessID string
	Name       string
	Phone      string
	Email      string
	Address    string
	Type       ContactType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
