package dto

import "infuct.com/seguimiento/internal/entity"

type RegisterInput struct {
	Name     string `json:"nombre" binding:"required,max=100"`
	Surname  string `json:"apellido" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"contrasena" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"contrasena" binding:"required"`
}

type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn   int64             `json:"expires_in"`
	Secretary   *entity.Secretary `json:"secretaria"`
}
