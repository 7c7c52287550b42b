package dto

import "time"

// CreateContactRequest entrada para crear un contacto (cliente o proveedor).
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Type    string `json:"type" validate:"required,oneof=customer vendor"`
}

// UpdateContactRequest entrada para actualizar un contacto; campos nil conservan el valor actual.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Type    *string `json:"type"`
}

// ContactQuery filtros de GET /contacts.
type ContactQuery struct {
	Type   string `query:"type"`
	Search string `query:"search"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
