package dto

// RegisterRequest entrada para registrar un negocio.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	BusinessName string `json:"businessName" validate:"required"`
}

// LoginRequest entrada para login; Username acepta username o email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse negocio autenticado con su token JWT.
type AuthResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	Token        string `json:"token"`
}
