package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/modules/auth/dto"
	auth "infuct.com/seguimiento/internal/modules/auth/service"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/validator"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":      "Secretaria registrada exitosamente",
		"secretaria":   resp.Secretary,
		"access_token": resp.AccessToken,
		"token_type":   resp.TokenType,
		"expires_in":   resp.ExpiresIn,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), input, c.ClientIP())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      "Inicio de sesión exitoso",
		"secretaria":   resp.Secretary,
		"access_token": resp.AccessToken,
		"token_type":   resp.TokenType,
		"expires_in":   resp.ExpiresIn,
	})
}

// Logout is stateless; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Sesión cerrada exitosamente")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	secretary, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"secretaria": secretary})
}
