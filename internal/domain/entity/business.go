package entity

import "time"

// Business representa el tenant raíz: todos los contactos, productos y transacciones le pertenecen.
type Business struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	BusinessName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
