package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/token"
)

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// secretary id under "user_id".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			response.Abort(c, apperror.Unauthorized("Token de autorización requerido"))
			return
		}

		userID, err := m.tokens.Parse(tokenString)
		if err != nil {
			response.Abort(c, apperror.Unauthorized("Token inválido o expirado"))
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
