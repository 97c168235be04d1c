package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Success writes the standard envelope. body may be nil.
func Success(c *gin.Context, code int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["status"] = StatusSuccess
	c.JSON(code, body)
}

// Message is a shorthand for a success envelope carrying only a message.
func Message(c *gin.Context, code int, message string) {
	Success(c, code, gin.H{"message": message})
}

// ResponseError standardized error response. Only the public message of err
// reaches the client; server errors are logged with their cause.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}

	c.JSON(code, gin.H{
		"status": StatusError,
		"error":  apperror.PublicMessage(err),
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	ResponseError(c, err)
	c.Abort()
}

// GetUserID retrieves the authenticated secretary id from the context
func GetUserID(c *gin.Context) (uint, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.Unauthorized("No autorizado")
	}

	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, apperror.Unauthorized("No autorizado")
	}

	return id, nil
}
